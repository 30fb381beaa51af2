package schema

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "catalog",
	"name": "catalog_event",
	"fields" : [
		{"name": "action", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// CatalogEventV1 announces a confirmed product mutation.
// OccurredAt is unix milliseconds.
type CatalogEventV1 struct {
	Action     string `avro:"action"`
	ProductID  int64  `avro:"product_id"`
	OccurredAt int64  `avro:"occurred_at"`
}

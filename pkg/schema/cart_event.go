package schema

import "github.com/hamba/avro/v2"

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "session_id", "type": "string"},
		{"name": "item_id", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "action", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// A CartEventV1 is one cart mutation in the activity stream.
// OccurredAt is unix milliseconds.
type CartEventV1 struct {
	SessionID  string `avro:"session_id"`
	ItemID     string `avro:"item_id"`
	ProductID  string `avro:"product_id"`
	Action     string `avro:"action"`
	Quantity   int    `avro:"quantity"`
	OccurredAt int64  `avro:"occurred_at"`
}

func CartEventV1Avro() avro.Schema {
	return avro.MustParse(CartEventSchemaTextV1)
}

package types

// Oracle module event types
const (
	EventTypeSetPriceSource    = "set_price_source"
	EventTypeRemovePriceSource = "remove_price_source"
	EventTypeParamsUpdate      = "oracle_params_updated"

	AttributeKeyDenom       = "denom"
	AttributeKeyPriceSource = "price_source"
	AttributeKeySender      = "sender"
	AttributeKeyAuthority   = "authority"
)

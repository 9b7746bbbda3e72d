package pricing

import "encoding/json"

// Defaults applied to item fields the caller leaves out.
const (
	DefaultSizeIndex = 0
	DefaultQuantity  = 1
	DefaultGlassID   = "laminated-6.38mm"
	DefaultFinishID  = "black"
)

// ItemSpec selects one product configuration to price.
type ItemSpec struct {
	ProductID string   `json:"product_id"`
	SizeIndex int      `json:"size_index"`
	Quantity  int      `json:"quantity"`
	GlassID   string   `json:"glass_id"`
	FinishID  string   `json:"finish_id"`
	AddonIDs  []string `json:"addon_ids"`
}

// NewItemSpec returns a spec for productID with every other field defaulted.
func NewItemSpec(productID string) ItemSpec {
	return ItemSpec{
		ProductID: productID,
		SizeIndex: DefaultSizeIndex,
		Quantity:  DefaultQuantity,
		GlassID:   DefaultGlassID,
		FinishID:  DefaultFinishID,
		AddonIDs:  []string{},
	}
}

// UnmarshalJSON keeps the defaults for fields missing from the payload.
func (s *ItemSpec) UnmarshalJSON(data []byte) error {
	type plain ItemSpec
	p := plain(NewItemSpec(""))
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.AddonIDs == nil {
		p.AddonIDs = []string{}
	}
	*s = ItemSpec(p)
	return nil
}

// Package takeoff simulates extracting a window and door schedule from an
// uploaded construction document. No document is read: every call returns the
// same sample schedule and only echoes the filename back.
package takeoff

import "github.com/Simplici0/wdquote/internal/pricing"

const (
	StatusExtracted = "extracted"
	Confidence      = 0.94
)

// ExtractedItem is one schedule line, shaped like a quote item plus the note
// the extraction read it from.
type ExtractedItem struct {
	ProductID     string   `json:"product_id"`
	SizeIndex     int      `json:"size_index"`
	Quantity      int      `json:"quantity"`
	GlassID       string   `json:"glass_id"`
	FinishID      string   `json:"finish_id"`
	AddonIDs      []string `json:"addon_ids"`
	ExtractedNote string   `json:"extracted_note"`
}

// Summary counts what the schedule contains.
type Summary struct {
	TotalWindows int `json:"total_windows"`
	TotalDoors   int `json:"total_doors"`
	UniqueTypes  int `json:"unique_types"`
}

// Result is the simulated extraction output.
type Result struct {
	Filename       string          `json:"filename"`
	Status         string          `json:"status"`
	Confidence     float64         `json:"confidence"`
	ExtractedItems []ExtractedItem `json:"extracted_items"`
	Summary        Summary         `json:"summary"`
}

var sampleSchedule = []ExtractedItem{
	{
		ProductID: "awning-window", SizeIndex: 2, Quantity: 6,
		GlassID: "low-e", FinishID: "matt-black", AddonIDs: []string{"flyscreen"},
		ExtractedNote: "W01 — Awning 1200x900 (Bedrooms 1-3, Ensuite, Bathroom, Laundry)",
	},
	{
		ProductID: "fixed-window", SizeIndex: 4, Quantity: 2,
		GlassID: "double-glazed-low-e", FinishID: "matt-black", AddonIDs: []string{},
		ExtractedNote: "W02 — Fixed 2400x1500 (Living Room feature windows)",
	},
	{
		ProductID: "sliding-window", SizeIndex: 2, Quantity: 3,
		GlassID: "low-e", FinishID: "monument", AddonIDs: []string{"flyscreen", "security-mesh"},
		ExtractedNote: "W03 — Sliding 2400x1200 3-panel (Kitchen, Family, Study)",
	},
	{
		ProductID: "casement-window", SizeIndex: 1, Quantity: 2,
		GlassID: "obscure", FinishID: "matt-black", AddonIDs: []string{"flyscreen"},
		ExtractedNote: "W04 — Casement 900x1200 (WC, Powder Room)",
	},
	{
		ProductID: "hinged-door", SizeIndex: 2, Quantity: 1,
		GlassID: "laminated-6.38mm", FinishID: "matt-black", AddonIDs: []string{"hardware-upgrade", "sidelight"},
		ExtractedNote: "D01 — Double Hinged Entry 1640x2040 (Front Entry)",
	},
	{
		ProductID: "sliding-door", SizeIndex: 3, Quantity: 1,
		GlassID: "double-glazed-low-e", FinishID: "matt-black", AddonIDs: []string{"security-mesh"},
		ExtractedNote: "D02 — Sliding 4200x2400 3-panel (Rear Alfresco)",
	},
	{
		ProductID: "bifold-door", SizeIndex: 2, Quantity: 1,
		GlassID: "double-glazed", FinishID: "matt-black", AddonIDs: []string{},
		ExtractedNote: "D03 — Bifold 3600x2400 4-panel (Outdoor Living)",
	},
}

// Simulate returns the sample schedule for filename.
func Simulate(filename string) Result {
	items := make([]ExtractedItem, len(sampleSchedule))
	for i, item := range sampleSchedule {
		item.AddonIDs = append([]string{}, item.AddonIDs...)
		items[i] = item
	}

	return Result{
		Filename:       filename,
		Status:         StatusExtracted,
		Confidence:     Confidence,
		ExtractedItems: items,
		Summary: Summary{
			TotalWindows: 13,
			TotalDoors:   3,
			UniqueTypes:  7,
		},
	}
}

// Spec converts the extracted line into a quote item.
func (i ExtractedItem) Spec() pricing.ItemSpec {
	return pricing.ItemSpec{
		ProductID: i.ProductID,
		SizeIndex: i.SizeIndex,
		Quantity:  i.Quantity,
		GlassID:   i.GlassID,
		FinishID:  i.FinishID,
		AddonIDs:  append([]string{}, i.AddonIDs...),
	}
}

// Specs converts every extracted line, in schedule order.
func (r Result) Specs() []pricing.ItemSpec {
	specs := make([]pricing.ItemSpec, 0, len(r.ExtractedItems))
	for _, item := range r.ExtractedItems {
		specs = append(specs, item.Spec())
	}
	return specs
}

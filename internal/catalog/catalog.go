package catalog

import (
	"strings"

	"github.com/gpucloudstore/gpucloud-site/internal/leads"
)

// Offering is one GPU configuration shown in the search palette.
type Offering struct {
	Title   string `json:"title"`
	Specs   string `json:"specs"`
	Price   string `json:"price"`
	Details string `json:"details"`
}

// Selection converts the offering into the reference sent with a lead.
func (o Offering) Selection() leads.Selection {
	return leads.Selection{Title: o.Title, Specs: o.Specs, Price: o.Price}
}

var offerings = []Offering{
	{
		Title:   "A100 x8 — 640 GB HBM",
		Specs:   "96 vCPU • 1.6 TB RAM • 3.2 TB NVMe",
		Price:   "$8.40/hr",
		Details: "Best for multi-node training runs with large models and long training windows. High VRAM and interconnect bandwidth.",
	},
	{
		Title:   "H100 x4 — 320 GB HBM3",
		Specs:   "64 vCPU • 512 GB RAM • 2 TB NVMe",
		Price:   "$6.15/hr",
		Details: "Great for mixed inference + fine-tuning workloads where you need strong BF16/FP8 performance but moderate scale.",
	},
	{
		Title:   "L40S x8 — 192 GB GDDR6",
		Specs:   "48 vCPU • 256 GB RAM • 1.5 TB NVMe",
		Price:   "$4.20/hr",
		Details: "Balanced choice for latency-sensitive inference and smaller trainings. Good value for general-purpose GPU workloads.",
	},
	{
		Title:   "RTX 4090 x4 — 96 GB GDDR6X",
		Specs:   "32 vCPU • 128 GB RAM • 1 TB NVMe",
		Price:   "$2.80/hr",
		Details: "Ideal for explorers and smaller teams running experiments, prototyping models, and doing heavy local development.",
	},
	{
		Title:   "A100 x16 — 1.3 TB HBM",
		Specs:   "192 vCPU • 2 TB RAM • 6.4 TB NVMe",
		Price:   "$15.90/hr",
		Details: "For the largest training jobs where you need as much VRAM and bandwidth as possible on a single high-density node.",
	},
	{
		Title:   "MI300X x8 — 1.5 TB HBM3",
		Specs:   "128 vCPU • 1 TB RAM • 4 TB NVMe",
		Price:   "$11.20/hr",
		Details: "AMD-based alternative for massive inference fleets and training jobs that are tuned for ROCm-compatible stacks.",
	},
}

// All returns a copy of every offering in display order.
func All() []Offering {
	out := make([]Offering, len(offerings))
	copy(out, offerings)
	return out
}

// Search returns offerings whose title or specs contain every whitespace
// separated term of query, case-insensitively. An empty query matches all.
func Search(query string) []Offering {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return All()
	}
	var out []Offering
	for _, o := range offerings {
		haystack := strings.ToLower(o.Title + " " + o.Specs)
		if containsAll(haystack, terms) {
			out = append(out, o)
		}
	}
	return out
}

// Lookup finds an offering by exact title, or by a unique search match.
func Lookup(title string) (Offering, bool) {
	for _, o := range offerings {
		if strings.EqualFold(o.Title, strings.TrimSpace(title)) {
			return o, true
		}
	}
	matches := Search(title)
	if len(matches) == 1 {
		return matches[0], true
	}
	return Offering{}, false
}

func containsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

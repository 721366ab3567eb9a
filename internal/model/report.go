package model

// CategoryCount is one bar of a frequency table
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SummaryMetrics are the key figures printed on the report title page
type SummaryMetrics struct {
	Total             int             `json:"total"`
	IndigenousPercent float64         `json:"indigenous_percent"` // 0-100
	SexCounts         []CategoryCount `json:"sex_counts"`         // first-seen order
}

// Section is one captioned chart destined for the report
type Section struct {
	Caption string
	Image   []byte
}

// BlockKind classifies the content of a page block
type BlockKind string

const (
	BlockTitle    BlockKind = "title"
	BlockSubtitle BlockKind = "subtitle"
	BlockHeading  BlockKind = "heading"
	BlockMetric   BlockKind = "metric" // "Key: Value" line
	BlockItem     BlockKind = "item"   // "- Text" breakdown line
	BlockLogo     BlockKind = "logo"
	BlockImage    BlockKind = "image" // caption + chart, never split
)

// ImageBlock is a raster image with its caption and decoded dimensions
type ImageBlock struct {
	Caption string
	Format  string // png, jpeg, gif
	Data    []byte
	Width   int
	Height  int
}

// Block is one unit of page content
type Block struct {
	Kind  BlockKind
	Text  string
	Key   string
	Value string
	Image *ImageBlock
}

// Page is an ordered list of blocks
type Page struct {
	Blocks []Block
}

// Images returns the image blocks on the page
func (p Page) Images() []*ImageBlock {
	var out []*ImageBlock
	for _, b := range p.Blocks {
		if b.Kind == BlockImage && b.Image != nil {
			out = append(out, b.Image)
		}
	}
	return out
}

// ReportDocument is the paginated report. The first page is the title page.
type ReportDocument struct {
	Title        string
	Organization string
	Pages        []Page
}

// SectionCount returns the number of image sections across all pages
func (d *ReportDocument) SectionCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Images())
	}
	return n
}

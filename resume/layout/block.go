package layout

// BlockKind discriminates the format-agnostic content units handed to the
// renderer backends.
type BlockKind string

const (
	// BlockHeading is a section or entry heading.
	BlockHeading BlockKind = "heading"
	// BlockParagraph is a plain text paragraph.
	BlockParagraph BlockKind = "paragraph"
	// BlockBullet is a single bulleted list item.
	BlockBullet BlockKind = "bullet"
	// BlockPageBreak signals the PDF backend to begin a new page. The DOCX
	// backend ignores it; that format reflows in the viewer.
	BlockPageBreak BlockKind = "pagebreak"
)

// HeadingLevel distinguishes the document name, section headings, and entry
// headings for backends that map them to native constructs.
type HeadingLevel int

const (
	LevelName HeadingLevel = iota + 1
	LevelSection
	LevelEntry
)

// Block is one formatted unit of output. All styling is resolved: the
// renderers consume these attributes verbatim and apply no policy of
// their own.
type Block struct {
	Kind  BlockKind
	Level HeadingLevel
	Text  string

	Font   string
	Bold   bool
	Size   float64
	Color  string
	Indent float64

	// Underline draws a rule beneath the text (section headings).
	Underline bool

	// SpaceAfter is the vertical gap following the block, in points.
	SpaceAfter float64

	// Page and Y are the computed absolute position for fixed-page
	// backends. Height is the estimated rendered height in points.
	Page   int
	Y      float64
	Height float64
}

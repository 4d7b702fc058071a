// Package content turns raw page markup into the clean text the pattern
// extractors run on.  It strips layout noise, locates the legal-notice
// container, and excises third-party credit blocks so that a web-design
// agency's imprint line does not become the extracted company.
package content

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

// Prepared is the cleaned view of one page.
type Prepared struct {
	// Text is the clean legal-notice text with partner spans excised.
	Text string

	// Headings, AddressBlocks and TableRows are structural sub-blocks of
	// the legal container, useful to extractors as higher-precision input.
	Headings      []string
	AddressBlocks []string
	TableRows     []string

	// UsedFallback is set when isolation confidence was too low and the
	// unfiltered container text was returned instead.
	UsedFallback bool
}

// noiseSelector removes structural elements that never carry legal-notice
// content.
const noiseSelector = "nav, header, footer, aside, script, style, noscript, iframe, svg, form, button"

// noiseNamePatterns are matched against class and id attributes; any hit
// removes the element.
var noiseNamePatterns = []string{
	"cookie", "banner", "consent", "nav", "menu", "footer", "header",
	"search", "cart", "warenkorb", "advert", "ads", "sponsor", "social",
	"share", "breadcrumb", "sidebar", "popup", "modal", "newsletter",
	"login", "widget",
}

// legalContainerPatterns are matched against class and id attributes to find
// the legal-notice container directly.
var legalContainerPatterns = []string{
	"impressum", "imprint", "legal", "mentions-legales", "mentions_legales",
	"mentionslegales", "aviso-legal", "colofon",
}

// legalKeywords score candidate blocks when no container matches by name.
var legalKeywords = []string{
	"impressum", "imprint", "legal notice", "mentions légales",
	"handelsregister", "registergericht", "companies house",
	"registered office", "ust-idnr", "vat", "siret", "siren",
	"geschäftsführer", "vertreten durch", "firmenbuch",
}

// partnerStartPhrases open a third-party credit span.  Scanning is
// line-by-line; the span closes at the next partnerEndPhrase.
var partnerStartPhrases = []string{
	"design by", "designed by", "webdesign", "web design", "website by",
	"umsetzung", "realisierung", "realisiert von", "erstellt von",
	"konzeption", "programmierung", "technische umsetzung",
	// "provider" alone would also match the "Provider:" operator label the
	// UK and generic extractors read names from; keep it qualified.
	"hosting", "hosted by", "gehostet bei", "hosting provider",
	"platform provider", "plattform-betreiber", "shopsystem",
	"bildnachweis", "image credits", "fotos:", "photos by", "fotonachweis",
	"crédits photos", "création du site", "réalisation",
	"online-streitbeilegung", "streitschlichtung", "verbraucherstreitbeilegung",
	"plattform der eu-kommission", "dispute resolution", "odr-verordnung",
}

// partnerEndPhrases close a credit span: these labels signal that primary
// company data resumes.
var partnerEndPhrases = []string{
	"kontakt", "contact", "adresse", "address", "anschrift",
	"telefon", "tel.", "tel:", "phone", "e-mail", "email",
	"geschäftsführer", "vertreten durch", "vorstand", "inhaber",
	"handelsregister", "registergericht", "registernummer",
	"ust-idnr", "umsatzsteuer", "vat", "steuernummer",
	"registered", "company number", "siret", "siren", "rcs",
	"firmenbuch",
}

// primaryLabels introduce the block describing the site operator itself;
// when present, that block is prepended so extraction prioritises it.
var primaryLabels = []string{
	"diensteanbieter", "anbieter", "betreiber", "betrieben von",
	"herausgeber", "verantwortlich", "operator", "publisher",
	"site operator", "éditeur du site", "éditeur",
}

// minContainerChars is the minimum text length for the main/article
// heuristic to trust a container.
const minContainerChars = 100

// defaultSparseTextChars is the threshold below which raw-markup cleaning is
// considered to have failed (single-page applications render client-side)
// and a markdown rendering is preferred instead.
const defaultSparseTextChars = 200

// Preparer cleans raw markup.  It is stateless apart from the logger and
// safe for concurrent use.
type Preparer struct {
	log    logging.Logger
	sparse int
}

// PreparerOption customises a Preparer.
type PreparerOption func(*Preparer)

// WithSparseThreshold overrides the character count below which cleaned
// markup is treated as sparse.
func WithSparseThreshold(chars int) PreparerOption {
	return func(p *Preparer) {
		if chars > 0 {
			p.sparse = chars
		}
	}
}

// NewPreparer constructs a Preparer.
func NewPreparer(log logging.Logger, opts ...PreparerOption) *Preparer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	p := &Preparer{log: log.Named("content"), sparse: defaultSparseTextChars}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepare cleans rawHTML into extraction-ready text.  renderedMarkdown, when
// supplied by the fetcher for JS-rendered pages, is preferred whenever
// cleaning the raw markup yields less than the sparse threshold.
// Input problems surface as EXT_* errors; the caller maps them to an empty
// NO_DATA record rather than aborting.
func (p *Preparer) Prepare(rawHTML, sourceURL, renderedMarkdown string) (*Prepared, error) {
	if strings.TrimSpace(rawHTML) == "" && strings.TrimSpace(renderedMarkdown) == "" {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no markup supplied").WithDetail("url=" + sourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		if renderedMarkdown != "" {
			return p.fromPlainText(renderedMarkdown), nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeMarkupParseFailed, "unparseable markup").WithDetail("url=" + sourceURL)
	}

	// Most imprints separate name/street/postal lines with <br>; goquery's
	// Text() would glue them into one token run, so turn the tags into
	// newlines before any text is taken.
	doc.Find("br").ReplaceWithHtml("\n")

	p.removeNoise(doc)
	container := p.locateLegalContainer(doc)

	prepared := p.fromContainer(container)

	if len(prepared.Text) < p.sparse {
		// SPA page or over-aggressive cleaning: fall back to the rendered
		// markdown, then to a markdown conversion of the full raw page.
		if alt := strings.TrimSpace(renderedMarkdown); len(alt) > len(prepared.Text) {
			p.log.Debug("using rendered markdown fallback",
				logging.String("url", sourceURL), logging.Int("raw_chars", len(prepared.Text)))
			fallback := p.fromPlainText(alt)
			fallback.Headings = prepared.Headings
			fallback.AddressBlocks = prepared.AddressBlocks
			fallback.TableRows = prepared.TableRows
			return fallback, nil
		}
		if md, mdErr := htmltomarkdown.ConvertString(rawHTML); mdErr == nil {
			// Only worth it when the conversion recovers substantially more
			// text than structural cleaning did.
			if alt := strings.TrimSpace(md); len(alt) > 2*len(prepared.Text) {
				fallback := p.fromPlainText(alt)
				fallback.Headings = prepared.Headings
				fallback.AddressBlocks = prepared.AddressBlocks
				fallback.TableRows = prepared.TableRows
				return fallback, nil
			}
		}
	}

	if strings.TrimSpace(prepared.Text) == "" {
		return nil, errors.New(errors.ErrCodeContentTooShort, "page yielded no text").WithDetail("url=" + sourceURL)
	}
	return prepared, nil
}

// removeNoise drops structural noise and name-pattern-matched elements.
func (p *Preparer) removeNoise(doc *goquery.Document) {
	doc.Find(noiseSelector).Remove()
	doc.Find("div, section, ul, span").Each(func(_ int, s *goquery.Selection) {
		name := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
		if name == " " {
			return
		}
		for _, pat := range noiseNamePatterns {
			if strings.Contains(name, pat) {
				s.Remove()
				return
			}
		}
	})
}

// locateLegalContainer finds the most plausible legal-notice container,
// falling back stepwise to the whole body.
func (p *Preparer) locateLegalContainer(doc *goquery.Document) *goquery.Selection {
	// 1. Direct id/class match.
	var direct *goquery.Selection
	doc.Find("div, section, main, article").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
		for _, pat := range legalContainerPatterns {
			if strings.Contains(name, pat) {
				direct = s
				return false
			}
		}
		return true
	})
	if direct != nil {
		return direct
	}

	// 2. First main/article-equivalent block with enough text.
	var mainBlock *goquery.Selection
	doc.Find("main, article, [role=main]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(strings.TrimSpace(s.Text())) > minContainerChars {
			mainBlock = s
			return false
		}
		return true
	})
	if mainBlock != nil {
		return mainBlock
	}

	// 3. Densest block by legal-keyword count, two hits minimum.
	var densest *goquery.Selection
	best := 1
	doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(s.Text())
		hits := 0
		for _, kw := range legalKeywords {
			hits += strings.Count(text, kw)
		}
		if hits > best {
			best = hits
			densest = s
		}
	})
	if densest != nil {
		return densest
	}

	// 4. Whole body.
	return doc.Find("body")
}

// fromContainer extracts text and structural sub-blocks from the chosen
// container and excises partner credit spans.
func (p *Preparer) fromContainer(container *goquery.Selection) *Prepared {
	prepared := &Prepared{}

	container.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if h := strings.TrimSpace(s.Text()); h != "" {
			prepared.Headings = append(prepared.Headings, h)
		}
	})
	container.Find("address, [class*=address], [class*=adresse], [itemprop=address]").Each(func(_ int, s *goquery.Selection) {
		if a := collapseBlock(s.Text()); a != "" {
			prepared.AddressBlocks = append(prepared.AddressBlocks, a)
		}
	})
	container.Find("tr").Each(func(_ int, s *goquery.Selection) {
		var cells []string
		s.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			if t := strings.TrimSpace(c.Text()); t != "" {
				cells = append(cells, t)
			}
		})
		if len(cells) > 0 {
			prepared.TableRows = append(prepared.TableRows, strings.Join(cells, ": "))
		}
	})

	raw := blockText(container)
	lines := splitLines(raw)
	filtered, excised := excisePartnerSpans(lines)
	filtered = prependPrimaryBlock(filtered)

	text := strings.Join(filtered, "\n")
	if excised && len(text) < minContainerChars && len(raw) >= minContainerChars {
		// Isolation confidence too low: better the full text than nothing.
		prepared.Text = strings.Join(lines, "\n")
		prepared.UsedFallback = true
		return prepared
	}
	prepared.Text = text
	return prepared
}

// fromPlainText builds a Prepared from an already-textual rendering.
func (p *Preparer) fromPlainText(text string) *Prepared {
	lines := splitLines(text)
	filtered, _ := excisePartnerSpans(lines)
	filtered = prependPrimaryBlock(filtered)
	return &Prepared{Text: strings.Join(filtered, "\n"), UsedFallback: false}
}

// blockText renders a selection to text with line breaks preserved at block
// boundaries. goquery's Text() concatenates without separators, which would
// glue the postal code to the next label.
func blockText(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Find("h1, h2, h3, h4, h5, h6, p, li, td, th, div, address").Each(func(_ int, s *goquery.Selection) {
		// Only take text from leaf-ish nodes to avoid duplication.
		if s.Children().Filter("p, div, li, table, tr").Length() > 0 {
			return
		}
		if t := strings.TrimSpace(s.Text()); t != "" {
			sb.WriteString(t)
			sb.WriteString("\n")
		}
	})
	if sb.Len() == 0 {
		return strings.TrimSpace(sel.Text())
	}
	return sb.String()
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if l := collapseBlock(line); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func collapseBlock(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// excisePartnerSpans removes credit spans: from a recognized section-start
// phrase up to (exclusive) the next recognized section-end phrase.  The
// returned bool reports whether anything was cut.
func excisePartnerSpans(lines []string) ([]string, bool) {
	var out []string
	excised := false
	inPartner := false
	for _, line := range lines {
		lower := strings.ToLower(line)
		if inPartner {
			if matchesAny(lower, partnerEndPhrases) {
				inPartner = false
				out = append(out, line)
			} else {
				excised = true
			}
			continue
		}
		if matchesAny(lower, partnerStartPhrases) {
			inPartner = true
			excised = true
			continue
		}
		out = append(out, line)
	}
	return out, excised
}

// prependPrimaryBlock moves the block introduced by a primary-company label
// (operator/provider/publisher heading) to the front so extraction sees it
// first.  The block runs to the next empty slot of 6 lines or end of text.
func prependPrimaryBlock(lines []string) []string {
	start := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, label := range primaryLabels {
			if strings.HasPrefix(lower, label) {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start <= 0 {
		return lines
	}
	end := start + 7
	if end > len(lines) {
		end = len(lines)
	}
	block := lines[start:end]
	rest := make([]string, 0, len(lines))
	rest = append(rest, block...)
	rest = append(rest, lines[:start]...)
	rest = append(rest, lines[end:]...)
	return rest
}

func matchesAny(line string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

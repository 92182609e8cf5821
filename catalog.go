package zanders

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ammoready/zanders-go/config"
	"github.com/ammoready/zanders-go/csvstream"
)

// CatalogFilename is the fixed name of the inventory feed in the vendor's
// FTP directory.
const CatalogFilename = "zandersinv.csv"

// CatalogItem is one normalized row of the inventory feed. Columns the feed
// carries beyond the recognized set are kept in Extra; the redundant
// desc2/qty1-3/price2-3 columns are dropped during normalization.
type CatalogItem struct {
	ItemIdentifier   string
	Quantity         int
	ShortDescription string
	Name             string
	LongDescription  string
	Brand            string
	MfgNumber        string
	MAPPrice         decimal.Decimal
	Price            decimal.Decimal
	Extra            map[string]string
}

// Catalog streams the vendor's inventory feed from the FTP drop.
type Catalog struct {
	creds  Credentials
	cfg    *config.Config
	dial   FTPDialer
	logger *zap.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithCatalogLogger attaches a logger to the catalog.
func WithCatalogLogger(l *zap.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithDialer replaces the FTP dialer, for tests.
func WithDialer(dial FTPDialer) CatalogOption {
	return func(c *Catalog) {
		c.dial = dial
	}
}

// NewCatalog creates a catalog reader.
func NewCatalog(creds Credentials, cfg *config.Config, opts ...CatalogOption) (*Catalog, error) {
	if err := creds.check(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	c := &Catalog{
		creds:  creds,
		cfg:    cfg,
		dial:   DialFTP,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Each downloads the feed and yields normalized items to fn in chunks of at
// most chunkSize, preserving file order. The FTP session is closed and the
// temporary download removed on every exit path, including when fn returns
// an error.
func (c *Catalog) Each(ctx context.Context, chunkSize int, fn func(items []CatalogItem) error) error {
	if chunkSize < 1 {
		return fmt.Errorf("%w: chunk size must be at least 1, got %d", ErrMissingArgument, chunkSize)
	}
	if fn == nil {
		return fmt.Errorf("%w: chunk callback", ErrMissingArgument)
	}

	tmp, err := c.download(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	decoded, err := decodeReader(tmp, c.cfg.File.Encoding)
	if err != nil {
		return err
	}

	parser, err := csvstream.New(decoded,
		csvstream.WithTrimSpace(true),
		csvstream.WithLowercaseHeaders(true),
	)
	if err != nil {
		return fmt.Errorf("zanders: catalog: %w", err)
	}
	if err := parser.ParseHeader(); err != nil {
		return fmt.Errorf("zanders: catalog: %w", err)
	}

	chunk := make([]CatalogItem, 0, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("zanders: catalog: %w", err)
		}
		if row.IsEmpty() {
			continue
		}

		chunk = append(chunk, normalizeCatalogRow(row))
		if len(chunk) == chunkSize {
			if err := fn(chunk); err != nil {
				return err
			}
			chunk = make([]CatalogItem, 0, chunkSize)
		}
	}

	if len(chunk) > 0 {
		return fn(chunk)
	}

	return nil
}

// download fetches the feed into a temporary file, releasing the FTP
// session before parsing starts.
func (c *Catalog) download(ctx context.Context) (*os.File, error) {
	session, err := c.dial(ctx, c.cfg.FTP, c.creds)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = session.Quit()
	}()

	if err := session.ChangeDir(c.cfg.FTP.Directory); err != nil {
		return nil, fmt.Errorf("zanders: ftp chdir %s: %w", c.cfg.FTP.Directory, err)
	}

	remote, err := session.Retr(CatalogFilename)
	if err != nil {
		return nil, fmt.Errorf("zanders: ftp retrieve %s: %w", CatalogFilename, err)
	}
	defer remote.Close()

	tmp, err := os.CreateTemp("", "zandersinv-*.csv")
	if err != nil {
		return nil, fmt.Errorf("zanders: catalog temp file: %w", err)
	}

	size, err := io.Copy(tmp, remote)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("zanders: catalog download: %w", err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("zanders: catalog temp file: %w", err)
	}

	if c.cfg.Debug {
		c.logger.Debug("catalog downloaded",
			zap.String("host", c.cfg.FTP.Host),
			zap.String("directory", c.cfg.FTP.Directory),
			zap.String("file", CatalogFilename),
			zap.Int64("bytes", size),
		)
	}

	return tmp, nil
}

// decodeReader wraps r with a charset decoder for the configured feed
// encoding (Windows-1252 unless overridden).
func decodeReader(r io.Reader, encodingName string) (io.Reader, error) {
	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return nil, fmt.Errorf("zanders: unsupported file encoding %q: %w", encodingName, err)
	}

	return enc.NewDecoder().Reader(r), nil
}

// droppedColumns are feed columns discarded during normalization; their
// content is either folded into other fields or redundant tier data.
var droppedColumns = map[string]struct{}{
	"desc2":  {},
	"qty1":   {},
	"qty2":   {},
	"qty3":   {},
	"price2": {},
	"price3": {},
}

// renamedColumns are feed columns projected into named CatalogItem fields.
var renamedColumns = map[string]struct{}{
	"available":    {},
	"desc1":        {},
	"itemnumber":   {},
	"manufacturer": {},
	"mfgpnumber":   {},
	"mapprice":     {},
	"price1":       {},
}

// normalizeCatalogRow applies the feed's field renames, synthesizes name and
// long description, and drops the redundant columns.
func normalizeCatalogRow(row *csvstream.Row) CatalogItem {
	short := row.Get("desc1")

	item := CatalogItem{
		ItemIdentifier:   row.Get("itemnumber"),
		ShortDescription: short,
		Name:             short,
		LongDescription:  short + " " + row.Get("desc2"),
		Brand:            row.Get("manufacturer"),
		MfgNumber:        row.Get("mfgpnumber"),
		MAPPrice:         parseDecimal(row.Get("mapprice")),
		Price:            parseDecimal(row.Get("price1")),
	}

	if n, err := strconv.Atoi(row.Get("available")); err == nil {
		item.Quantity = n
	}

	for key, value := range row.Data {
		if _, dropped := droppedColumns[key]; dropped {
			continue
		}
		if _, renamed := renamedColumns[key]; renamed {
			continue
		}
		if item.Extra == nil {
			item.Extra = make(map[string]string)
		}
		item.Extra[key] = value
	}

	return item
}

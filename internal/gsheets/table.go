// Package gsheets stores the shortlist in a Google Sheets worksheet.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/david/tender-finder/internal/reconcile"
)

// lastColumn bounds every range to the ten shortlist columns.
const lastColumn = "J"

type Options struct {
	SpreadsheetID   string
	SheetName       string // empty selects the first worksheet
	CredentialsJSON []byte // service account key
	CredentialsFile string
	ClientOptions   []option.ClientOption
}

// Table is a worksheet whose first row holds the headers.
type Table struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// New opens the spreadsheet and resolves the worksheet to write to.
// Credential problems are reported as reconcile.ErrStoreAuth.
func New(ctx context.Context, opts Options) (*Table, error) {
	if opts.SpreadsheetID == "" {
		return nil, &reconcile.StoreError{Op: "connect", Err: errors.New("spreadsheet id is required")}
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case len(opts.CredentialsJSON) > 0:
		clientOpts = append(clientOpts, option.WithCredentialsJSON(opts.CredentialsJSON))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, reconcile.AuthError(err)
	}

	t := &Table{svc: svc, spreadsheetID: opts.SpreadsheetID, sheetName: opts.SheetName}
	if t.sheetName == "" {
		name, err := t.firstSheet(ctx)
		if err != nil {
			return nil, wrap("connect", err)
		}
		t.sheetName = name
	}
	return t, nil
}

func (t *Table) SheetName() string { return t.sheetName }

func (t *Table) firstSheet(ctx context.Context) (string, error) {
	ss, err := t.svc.Spreadsheets.Get(t.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no worksheets", t.spreadsheetID)
	}
	return ss.Sheets[0].Properties.Title, nil
}

// RowCount implements reconcile.Table. Only rows holding values count.
func (t *Table) RowCount(ctx context.Context) (int, error) {
	resp, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, t.a1("A:"+lastColumn)).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, wrap("count", err)
	}
	return len(resp.Values), nil
}

// ClearDataRows implements reconcile.Table.
func (t *Table) ClearDataRows(ctx context.Context) error {
	_, err := t.svc.Spreadsheets.Values.Clear(t.spreadsheetID, t.a1("A2:"+lastColumn), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return wrap("clear", err)
	}
	return nil
}

// AppendRow implements reconcile.Table. Values are written as plain text.
func (t *Table) AppendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	_, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, t.a1("A1"), &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{row},
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return wrap("append", err)
	}
	return nil
}

// a1 qualifies a cell range with the worksheet name.
func (t *Table) a1(cells string) string {
	return "'" + strings.ReplaceAll(t.sheetName, "'", "''") + "'!" + cells
}

func wrap(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden) {
		return reconcile.AuthError(err)
	}
	return &reconcile.StoreError{Op: op, Err: err}
}

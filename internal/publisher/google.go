package publisher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/anishpatel/jobsheet/internal/model"
)

// Scopes requested for the service account.
var Scopes = []string{
	"https://spreadsheets.google.com/feeds",
	"https://www.googleapis.com/auth/drive",
}

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// Ensure GoogleBackend implements Backend.
var _ Backend = (*GoogleBackend)(nil)

// GoogleBackend talks to the Drive API (to find a spreadsheet by name) and the
// Sheets API (to read, write and format it).
type GoogleBackend struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// ServiceAccountDialer returns a Dialer that authenticates with the
// service-account key at credentialsFile.
func ServiceAccountDialer(credentialsFile string) Dialer {
	return func(ctx context.Context) (Backend, error) {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("reading service account credentials: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("parsing service account credentials: %w", err)
		}
		httpClient := conf.Client(ctx)
		return NewGoogleBackend(ctx,
			[]option.ClientOption{option.WithHTTPClient(httpClient)},
			[]option.ClientOption{option.WithHTTPClient(httpClient)},
		)
	}
}

// NewGoogleBackend builds the Sheets and Drive clients from their options.
func NewGoogleBackend(ctx context.Context, sheetsOpts, driveOpts []option.ClientOption) (*GoogleBackend, error) {
	sheetsSvc, err := sheets.NewService(ctx, sheetsOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, driveOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}
	return &GoogleBackend{sheets: sheetsSvc, drive: driveSvc}, nil
}

// OpenFirstSheet finds the first spreadsheet titled name that the account can
// see and returns its first sheet.
func (b *GoogleBackend) OpenFirstSheet(ctx context.Context, name string) (Worksheet, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), spreadsheetMimeType)
	list, err := b.drive.Files.List().
		Q(q).
		Fields("files(id,name)").
		PageSize(10).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return Worksheet{}, fmt.Errorf("searching drive for %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return Worksheet{}, fmt.Errorf("%q: %w", name, ErrSpreadsheetNotFound)
	}
	id := list.Files[0].Id

	ss, err := b.sheets.Spreadsheets.Get(id).Fields("spreadsheetId,sheets.properties").Context(ctx).Do()
	if err != nil {
		return Worksheet{}, fmt.Errorf("opening spreadsheet %q: %w", name, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return Worksheet{}, fmt.Errorf("spreadsheet %q has no sheets: %w", name, ErrSpreadsheetNotFound)
	}
	props := ss.Sheets[0].Properties
	return Worksheet{SpreadsheetID: id, SheetID: props.SheetId, Title: props.Title}, nil
}

// Clear removes every value on the sheet. Formatting is left alone.
func (b *GoogleBackend) Clear(ctx context.Context, ws Worksheet) error {
	_, err := b.sheets.Spreadsheets.Values.Clear(ws.SpreadsheetID, sheetRange(ws.Title, ""), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clearing %s: %w", ws.Title, err)
	}
	return nil
}

// Update writes table starting at A1. Values are stored as-is (RAW), never parsed.
func (b *GoogleBackend) Update(ctx context.Context, ws Worksheet, table model.Table) error {
	values := make([][]interface{}, len(table))
	for i, row := range table {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	_, err := b.sheets.Spreadsheets.Values.Update(ws.SpreadsheetID, sheetRange(ws.Title, "A1"), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating %s: %w", ws.Title, err)
	}
	return nil
}

// BatchUpdate sends requests as one atomic spreadsheet batch.
func (b *GoogleBackend) BatchUpdate(ctx context.Context, ws Worksheet, requests ...*sheets.Request) error {
	_, err := b.sheets.Spreadsheets.BatchUpdate(ws.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("batch update %s: %w", ws.Title, err)
	}
	return nil
}

// sheetRange quotes a sheet title for A1 notation and appends cell, if any.
func sheetRange(title, cell string) string {
	quoted := "'" + strings.ReplaceAll(title, "'", "''") + "'"
	if cell == "" {
		return quoted
	}
	return quoted + "!" + cell
}

// escapeQuery escapes a literal for a Drive files.list query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/cache2k25/registration-backend/internal/model"
)

// SheetName is the single worksheet all registrations live on.
const SheetName = "Registrations"

// headers is the fixed column order of the ledger.  The export file is
// consumed directly by fest admins, so the order and spelling are part of
// the contract and must not change between releases.
var headers = []string{
	"Registration ID", "Event ID", "Event Name", "Participant Name",
	"Email", "Phone", "College", "Total Amount", "Payment Status",
	"Payment ID", "Registration Date", "Team Members", "Game IDs",
}

// tokenLen is the length of the random suffix in a registration ID.
const tokenLen = 8

// maxIDDraws bounds the collision-retry loop in Append.
const maxIDDraws = 10

// Ledger is the append-only table of confirmed registrations, backed by a
// single .xlsx file.  Every append reads the whole table, adds one row and
// rewrites the file, so all access is funneled through one mutex: writers
// take the write lock, readers take the read lock and may observe a
// slightly stale snapshot but never a torn file.
type Ledger struct {
	mu     sync.RWMutex
	path   string
	prefix string // registration ID prefix, e.g. "CACHE2K25"
}

// NewLedger returns a Ledger stored at path.  IDs are issued as
// "<prefix>_<8-char uppercase token>".  The file itself is created lazily
// by Init or by the first Append.
func NewLedger(path, prefix string) *Ledger {
	return &Ledger{path: path, prefix: prefix}
}

// Init creates the ledger file with its header row if it does not exist
// yet.  Safe to call at every startup.
func (l *Ledger) Init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initLocked()
}

func (l *Ledger) initLocked() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger: %w", err)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &row); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SaveAs(l.path); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Append writes one confirmed registration and returns the assigned
// registration ID.  The RegistrationID and RegistrationDate fields of reg
// are ignored on input: the ID is drawn here, checked for uniqueness
// against every row currently in the file, and the date is stamped at
// write time.  PaymentStatus is forced to "completed"; no other status is
// ever persisted.
//
// The read-append-rewrite cycle runs entirely under the write lock, which
// is what makes concurrent appends safe: without it, two racing calls
// would both read N rows and both write row N+1, losing one of them.
func (l *Ledger) Append(ctx context.Context, reg model.ConfirmedRegistration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.initLocked(); err != nil {
		return "", err
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return "", fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return "", fmt.Errorf("read ledger rows: %w", err)
	}

	existing := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		existing[row[0]] = struct{}{}
	}

	// Random tokens make collisions vanishingly unlikely, but the check
	// against the freshly read table closes the theoretical window.
	var id string
	for draws := 0; ; draws++ {
		if draws == maxIDDraws {
			return "", ErrIDExhausted
		}
		id = l.newID()
		if _, taken := existing[id]; !taken {
			break
		}
	}

	reg.RegistrationID = id
	reg.RegistrationDate = time.Now().UTC().Format(time.RFC3339)
	reg.PaymentStatus = model.PaymentStatusCompleted

	cells, err := rowCells(reg)
	if err != nil {
		return "", err
	}
	anchor := "A" + strconv.Itoa(len(rows)+1)
	if err := f.SetSheetRow(SheetName, anchor, &cells); err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}
	if err := f.Save(); err != nil {
		return "", fmt.Errorf("save ledger: %w", err)
	}
	return id, nil
}

// ListAll returns every confirmed registration in the ledger.  A missing
// file is not an error: it means nobody has registered yet.
func (l *Ledger) ListAll(ctx context.Context) ([]model.ConfirmedRegistration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.ConfirmedRegistration{}, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read ledger rows: %w", err)
	}

	regs := make([]model.ConfirmedRegistration, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		reg, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", i+1, err)
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// ListByEvent returns the registrations for one event, in file order.
func (l *Ledger) ListByEvent(ctx context.Context, eventID string) ([]model.ConfirmedRegistration, error) {
	all, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.ConfirmedRegistration, 0, len(all))
	for _, reg := range all {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}

// Export returns the raw ledger file for download.  ErrLedgerNotFound is
// returned when no registration has ever been written.
func (l *Ledger) Export(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	b, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return b, nil
}

// Path returns the location of the ledger file.
func (l *Ledger) Path() string { return l.path }

func (l *Ledger) newID() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:tokenLen]
	return l.prefix + "_" + token
}

// rowCells flattens a registration into the fixed column order.  List
// fields are JSON-encoded into a single cell each so the workbook stays a
// flat table; parseRow reverses the encoding.
func rowCells(reg model.ConfirmedRegistration) ([]interface{}, error) {
	teamCell := ""
	if len(reg.TeamMembers) > 0 {
		b, err := json.Marshal(reg.TeamMembers)
		if err != nil {
			return nil, fmt.Errorf("encode team members: %w", err)
		}
		teamCell = string(b)
	}
	gameCell := ""
	if len(reg.GameIDs) > 0 {
		b, err := json.Marshal(reg.GameIDs)
		if err != nil {
			return nil, fmt.Errorf("encode game ids: %w", err)
		}
		gameCell = string(b)
	}
	return []interface{}{
		reg.RegistrationID,
		reg.EventID,
		reg.EventName,
		reg.ParticipantName,
		reg.Email,
		reg.Phone,
		reg.College,
		reg.TotalAmount,
		reg.PaymentStatus,
		reg.PaymentID,
		reg.RegistrationDate,
		teamCell,
		gameCell,
	}, nil
}

func parseRow(row []string) (model.ConfirmedRegistration, error) {
	var reg model.ConfirmedRegistration
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	reg.RegistrationID = cell(0)
	reg.EventID = cell(1)
	reg.EventName = cell(2)
	reg.ParticipantName = cell(3)
	reg.Email = cell(4)
	reg.Phone = cell(5)
	reg.College = cell(6)
	if s := cell(7); s != "" {
		amount, err := strconv.Atoi(s)
		if err != nil {
			return reg, fmt.Errorf("total amount %q: %w", s, err)
		}
		reg.TotalAmount = amount
	}
	reg.PaymentStatus = cell(8)
	reg.PaymentID = cell(9)
	reg.RegistrationDate = cell(10)
	if s := cell(11); s != "" {
		if err := json.Unmarshal([]byte(s), &reg.TeamMembers); err != nil {
			return reg, fmt.Errorf("decode team members: %w", err)
		}
	}
	if s := cell(12); s != "" {
		if err := json.Unmarshal([]byte(s), &reg.GameIDs); err != nil {
			return reg, fmt.Errorf("decode game ids: %w", err)
		}
	}
	return reg, nil
}

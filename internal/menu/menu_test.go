package menu

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/config"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/mail"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/sqlite"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// The clock every test runs at. The sample data's review dates straddle the
// three-day interval around this date.
var testToday = time.Date(2022, time.April, 21, 12, 0, 0, 0, time.UTC)

// fakeSession records mail activity for batch assertions.
type fakeSession struct {
	loginErr error

	logins int
	closes int
	sends  []string
}

func (f *fakeSession) Login(string) error { f.logins++; return f.loginErr }

func (f *fakeSession) Send(to, subject, body string) error {
	f.sends = append(f.sends, to)
	return nil
}

func (f *fakeSession) Close() error { f.closes++; return nil }

type fixture struct {
	controller *Controller
	store      *sqlite.Store
	out        *bytes.Buffer
	session    *fakeSession
	exportPath string
}

// setup wires a Controller over a temp store with scripted input and a fake
// mail session.
func setup(t *testing.T, input string) *fixture {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "goods.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	exportPath := filepath.Join(t.TempDir(), "stock.xlsx")
	cfg := &config.Config{
		SMTPHost:           "smtp.gmail.com",
		SMTPPort:           465,
		AdminEmail:         "autoadmfactor@gmail.com",
		ReviewIntervalDays: 3,
		ExportPath:         exportPath,
	}

	out := &bytes.Buffer{}
	session := &fakeSession{}
	controller := New(Params{
		Store:      store,
		Config:     cfg,
		In:         strings.NewReader(input),
		Out:        out,
		Clock:      func() time.Time { return testToday },
		NewSession: func() (mail.Session, error) { return session, nil },
	})

	return &fixture{
		controller: controller,
		store:      store,
		out:        out,
		session:    session,
		exportPath: exportPath,
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		line    string
		want    action
		wantErr bool
	}{
		{line: "0", want: actionQuit},
		{line: "1", want: actionListDue},
		{line: "8", want: actionExport},
		{line: "9", wantErr: true},
		{line: "-1", wantErr: true},
		{line: "abc", wantErr: true},
		{line: "", wantErr: true},
		{line: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseAction(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrUnknownChoice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunQuitImmediately(t *testing.T) {
	f := setup(t, "0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Choose option:")
}

func TestRunUnknownChoiceReprompts(t *testing.T) {
	f := setup(t, "9\nabc\n0\n")
	require.NoError(t, f.controller.Run())

	assert.Equal(t, 2, strings.Count(f.out.String(), "Unknown option. Try again!"))
	// Three prompts: the two bad choices re-enter the loop.
	assert.Equal(t, 3, strings.Count(f.out.String(), "Choose option:"))
}

func TestRunEndOfInputQuits(t *testing.T) {
	f := setup(t, "")
	require.NoError(t, f.controller.Run())
}

func TestSeedAndListDue(t *testing.T) {
	f := setup(t, "6\n1\n0\n")
	require.NoError(t, f.controller.Run())

	output := f.out.String()
	assert.Contains(t, output, "Sample materials added")
	// Interval 3 at 2022-04-21: the 04-18 and 04-17 rows are due, the
	// 04-19 and 04-20 rows are not.
	assert.Contains(t, output, "32REW")
	assert.Contains(t, output, "BYSE")
	assert.NotContains(t, output, "22REW")
	assert.NotContains(t, output, "OILB")
}

func TestListDueEmptyStore(t *testing.T) {
	f := setup(t, "1\n0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "No materials need review")
}

func TestListAll(t *testing.T) {
	f := setup(t, "6\n3\n0\n")
	require.NoError(t, f.controller.Run())

	output := f.out.String()
	for _, desc := range []string{"22REW", "32REW", "BYSE", "OILB"} {
		assert.Contains(t, output, desc)
	}
}

func TestAddMaterial(t *testing.T) {
	f := setup(t, "4\nCOKE\n345800\n500\n2.50\nops@example.com\n0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Material added")

	m, err := f.store.SelectBySKU(345800)
	require.NoError(t, err)
	assert.Equal(t, "COKE", m.SKUDescription)
	assert.True(t, decimal.NewFromInt(500).Equal(m.CurrentStockKg))
	assert.True(t, decimal.RequireFromString("2.50").Equal(m.Price))
	assert.True(t, types.Truncate(testToday).Equal(m.LastReview), "review date is today")
	assert.Equal(t, "ops@example.com", m.ResponsibleEmployee)
}

func TestAddMaterialBadStock(t *testing.T) {
	f := setup(t, "4\nCOKE\n345800\nnot-a-number\n0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Entered wrong value. Try again!")

	all, err := f.store.SelectAll()
	require.NoError(t, err)
	assert.Empty(t, all, "no partial insert")
}

func TestChangeStock(t *testing.T) {
	f := setup(t, "6\n5\n345718\n123.5\n0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Stock updated")

	m, err := f.store.SelectBySKU(345718)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("123.5").Equal(m.CurrentStockKg))
	assert.True(t, types.Truncate(testToday).Equal(m.LastReview))
}

func TestChangeStockValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "non-numeric sku",
			input:   "6\n5\nnot-a-sku\n0\n",
			message: "Entered wrong value. Try again!",
		},
		{
			name:    "absent sku",
			input:   "6\n5\n111111\n0\n",
			message: "Provided SKU does not exist. Try again",
		},
		{
			name:    "non-numeric quantity",
			input:   "6\n5\n345718\nheavy\n0\n",
			message: "Entered wrong value. Try again!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, tt.input)
			require.NoError(t, f.controller.Run())
			assert.Contains(t, f.out.String(), tt.message)

			// Snapshot equality: the failed operation changed nothing.
			all, err := f.store.SelectAll()
			require.NoError(t, err)
			for _, m := range all {
				assert.NotEqual(t, types.Truncate(testToday), m.LastReview,
					"no review date was refreshed")
			}
		})
	}
}

func TestSendReminders(t *testing.T) {
	f := setup(t, "6\n2\nsecret\n0\n")
	require.NoError(t, f.controller.Run())

	assert.Contains(t, f.out.String(), "Sent 2 of 2 reminders")
	assert.Equal(t, 1, f.session.logins)
	assert.Equal(t, 1, f.session.closes)
	assert.Equal(t,
		[]string{"adampolakfactor@gmail.com", "autoadmfactor@gmail.com"},
		f.session.sends)
}

func TestSendRemindersAuthFailure(t *testing.T) {
	f := setup(t, "6\n2\nwrong\n0\n")
	f.session.loginErr = types.ErrAuthentication
	require.NoError(t, f.controller.Run(), "auth failure does not end the loop")

	assert.Contains(t, f.out.String(), "Email login failed. No reminders were sent.")
	assert.Empty(t, f.session.sends)
	assert.Equal(t, 1, f.session.closes)
}

func TestSendRemindersNothingDue(t *testing.T) {
	sessionOpened := false
	f := setup(t, "2\n0\n")
	f.controller.newSession = func() (mail.Session, error) {
		sessionOpened = true
		return f.session, nil
	}
	require.NoError(t, f.controller.Run())

	assert.Contains(t, f.out.String(), "No materials need review")
	assert.False(t, sessionOpened, "empty batch never opens a session")
}

func TestSessionFactoryFailureIsRecovered(t *testing.T) {
	f := setup(t, "6\n2\nsecret\n0\n")
	f.controller.newSession = func() (mail.Session, error) {
		return nil, errors.New("connection refused")
	}
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Operation failed:")
}

func TestResetViaMenu(t *testing.T) {
	f := setup(t, "6\n7\n0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Database reset")

	all, err := f.store.SelectAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExportViaMenu(t *testing.T) {
	f := setup(t, "6\n8\n0\n")
	require.NoError(t, f.controller.Run())
	assert.Contains(t, f.out.String(), "Stock table exported to")

	_, err := os.Stat(f.exportPath)
	assert.NoError(t, err)
}

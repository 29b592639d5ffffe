package menu

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/mail"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/report"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/review"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/sqlite"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

func (c *Controller) listDue() error {
	due, err := c.due()
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Fprintln(c.out, "No materials need review")
		return nil
	}
	c.showMaterials(due)
	return nil
}

func (c *Controller) listAll() error {
	all, err := c.store.SelectAll()
	if err != nil {
		return err
	}
	c.showMaterials(all)
	return nil
}

// sendReminders runs one notification batch: collect due records, prompt for
// the password, open a session, deliver. An empty batch never touches the
// mail endpoint.
func (c *Controller) sendReminders() error {
	due, err := c.due()
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Fprintln(c.out, "No materials need review")
		return nil
	}

	password, err := c.prompt("Enter your email password")
	if err != nil {
		return err
	}

	session, err := c.newSession()
	if err != nil {
		return fmt.Errorf("connect to mail server: %w", err)
	}
	sent, err := mail.SendReminders(session, password, due)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Sent %d of %d reminders\n", sent, len(due))
	return nil
}

// Add prompts for one material's fields and inserts it with today's date as
// the review date. Exported because the --add startup flag performs the same
// operation before the loop starts.
func (c *Controller) Add() error {
	desc, err := c.prompt("Enter raw material name")
	if err != nil {
		return err
	}
	sku, err := c.promptInt("Enter material sku code")
	if err != nil {
		return err
	}
	stock, err := c.promptDecimal("Enter current stock in kg")
	if err != nil {
		return err
	}
	price, err := c.promptDecimal("Enter material unit price")
	if err != nil {
		return err
	}
	employee, err := c.prompt("Enter person email responsible for material's management")
	if err != nil {
		return err
	}

	m := types.Material{
		SKUDescription:      desc,
		SKUID:               sku,
		CurrentStockKg:      stock,
		Price:               price,
		LastReview:          types.Truncate(c.clock()),
		ResponsibleEmployee: employee,
	}
	if err := c.store.Insert(m); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Material added")
	return nil
}

// changeStock validates the SKU, confirms the record exists, validates the
// quantity, then updates stock and review date together. Any failure leaves
// the store untouched.
func (c *Controller) changeStock() error {
	sku, err := c.promptInt("Provide SKU ID")
	if err != nil {
		return err
	}
	if _, err := c.store.SelectBySKU(sku); err != nil {
		return err
	}
	quantity, err := c.promptDecimal("Enter new quantity [kg]")
	if err != nil {
		return err
	}
	if err := c.store.UpdateStock(sku, quantity, types.Truncate(c.clock())); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Stock updated")
	return nil
}

func (c *Controller) seed() error {
	if err := c.store.BulkInsert(sqlite.SampleMaterials()); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Sample materials added")
	return nil
}

func (c *Controller) reset() error {
	if err := c.store.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Database reset")
	return nil
}

func (c *Controller) export() error {
	all, err := c.store.SelectAll()
	if err != nil {
		return err
	}
	if err := report.Export(all, c.cfg.ExportPath); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Stock table exported to %s\n", c.cfg.ExportPath)
	return nil
}

// due fetches all records and filters them with the configured interval at
// the controller's clock.
func (c *Controller) due() ([]types.Material, error) {
	all, err := c.store.SelectAll()
	if err != nil {
		return nil, err
	}
	return review.Due(all, c.cfg.ReviewIntervalDays, c.clock())
}

// promptInt asks the question and parses the answer as an integer.
func (c *Controller) promptInt(question string) (int64, error) {
	line, err := c.prompt(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q: %w", line, types.ErrValidation)
	}
	return n, nil
}

// promptDecimal asks the question and parses the answer as a decimal number.
func (c *Controller) promptDecimal(question string) (decimal.Decimal, error) {
	line, err := c.prompt(question)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("value %q: %w", line, types.ErrValidation)
	}
	return d, nil
}

// showMaterials prints records as an aligned table, insertion order preserved.
func (c *Controller) showMaterials(materials []types.Material) {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\tsku_description\tsku_id\tcurrent_stock_kg\tprice\tlast_review_date\tresponsible_employee")
	for _, m := range materials {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			m.ID, m.SKUDescription, m.SKUID,
			m.CurrentStockKg.String(), m.Price.String(),
			m.LastReview.Format(types.DateLayout), m.ResponsibleEmployee,
		)
	}
	w.Flush()
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

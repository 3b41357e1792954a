// budgetctl is a small terminal client for the Budget Formula server.
// It logs in with the configured pin/username, keeps the token in a
// file next to the home directory, and applies confirmed mutations to
// a local budget cache so totals update without a second fetch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/client"
	"github.com/kartik0x00/Budget-Formula/internal/models"
	"github.com/kartik0x00/Budget-Formula/internal/util"
)

const tokenFileName = ".budgetctl_token"

func main() {
	server := flag.String("server", envOr("BUDGETCTL_SERVER", "http://localhost:3000"), "server base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*server)
	if token, err := loadToken(); err == nil && token != "" {
		c.SetToken(token)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "login":
		err = cmdLogin(ctx, c, args[1:])
	case "logout":
		err = removeToken()
	case "me":
		err = cmdMe(ctx, c)
	case "summary":
		err = cmdSummary(ctx, c, args[1:])
	case "periods":
		err = cmdPeriods(ctx, c)
	case "add":
		err = cmdAdd(ctx, c, args[1:])
	case "update":
		err = cmdUpdate(ctx, c, args[1:])
	case "delete":
		err = cmdDelete(ctx, c, args[1:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: budgetctl [-server URL] <command> [flags]

commands:
  login    -pin PIN -user NAME
  logout
  me
  summary  [-month M -year Y]
  periods
  add      -date YYYY-MM-DD [-income N] [-income-source S] [-expenses N]
           [-expense-remarks S] [-fixed-pays N] [-fixed-remarks S]
  update   -id ID [same flags as add]
  delete   -id ID`)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ---------- token file ----------

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func removeToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	fmt.Println("logged out")
	return nil
}

// ---------- commands ----------

func cmdLogin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	pin := fs.String("pin", "", "PIN")
	user := fs.String("user", "", "user name")
	fs.Parse(args)

	u, err := c.Login(ctx, *pin, *user)
	if err != nil {
		return err
	}
	if err := saveToken(c.Token()); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Printf("logged in as %s\n", u.Name)
	return nil
}

func cmdMe(ctx context.Context, c *client.Client) error {
	u, err := c.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Println(u.Name)
	return nil
}

func cmdSummary(ctx context.Context, c *client.Client, args []string) error {
	cache := client.NewBudgetCache()
	month, year := cache.Period()

	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.IntVar(&month, "month", month, "month (1-12)")
	fs.IntVar(&year, "year", year, "year")
	fs.Parse(args)

	cache.SetPeriod(month, year)
	summary, err := c.GetSummary(ctx, month, year)
	if err != nil {
		return err
	}
	cache.Load(summary)

	printCache(cache)
	return nil
}

func cmdPeriods(ctx context.Context, c *client.Client) error {
	periods, err := c.AvailableDates(ctx)
	if err != nil {
		return err
	}
	for _, p := range periods {
		fmt.Printf("%04d-%02d\n", p.Year, p.Month)
	}
	return nil
}

// entryFlags binds the entry field flags and reports which were set.
func entryFlags(fs *flag.FlagSet) func() budget.EntryInput {
	date := fs.String("date", "", "entry date (YYYY-MM-DD)")
	income := fs.Int64("income", 0, "income amount")
	incomeSource := fs.String("income-source", "", "income source")
	expenses := fs.Int64("expenses", 0, "expenses amount")
	expenseRemarks := fs.String("expense-remarks", "", "expense remarks")
	fixedPays := fs.Int64("fixed-pays", 0, "fixed payments amount")
	fixedRemarks := fs.String("fixed-remarks", "", "fixed payments remarks")

	return func() budget.EntryInput {
		in := budget.EntryInput{Date: *date}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "income":
				in.Income = income
			case "income-source":
				in.IncomeSource = incomeSource
			case "expenses":
				in.Expenses = expenses
			case "expense-remarks":
				in.ExpenseRemarks = expenseRemarks
			case "fixed-pays":
				in.FixedPays = fixedPays
			case "fixed-remarks":
				in.FixedPaysRemarks = fixedRemarks
			}
		})
		return in
	}
}

// loadPeriodCache fetches and caches the month the entry belongs to.
func loadPeriodCache(ctx context.Context, c *client.Client, entry *models.BudgetEntry) (*client.BudgetCache, error) {
	cache := client.NewBudgetCache()
	cache.SetPeriod(entry.Month, entry.Year)
	summary, err := c.GetSummary(ctx, entry.Month, entry.Year)
	if err != nil {
		return nil, err
	}
	cache.Load(summary)
	return cache, nil
}

func cmdAdd(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	input := entryFlags(fs)
	fs.Parse(args)
	in := input()

	// fetch the month before the mutation so the cache demonstrates the
	// incremental update rather than a refetch
	var cache *client.BudgetCache
	if date, err := util.ParseDate(in.Date); err == nil {
		probe := &models.BudgetEntry{}
		probe.SetDate(date)
		cache, _ = loadPeriodCache(ctx, c, probe)
	}

	entry, err := c.CreateEntry(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", entry.ID)

	if cache != nil {
		cache.ApplyCreate(*entry)
		printCache(cache)
	}
	return nil
}

func cmdUpdate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "entry id")
	input := entryFlags(fs)
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	current, err := c.GetEntry(ctx, *id)
	if err != nil {
		return err
	}
	cache, err := loadPeriodCache(ctx, c, current)
	if err != nil {
		return err
	}

	entry, err := c.UpdateEntry(ctx, *id, input())
	if err != nil {
		return err
	}
	fmt.Printf("updated %s\n", entry.ID)

	if entry.Month == current.Month && entry.Year == current.Year {
		cache.ApplyUpdate(*entry)
	} else {
		// the entry moved to another month
		cache.ApplyDelete(entry.ID)
	}
	printCache(cache)
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "entry id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	current, err := c.GetEntry(ctx, *id)
	if err != nil {
		return err
	}
	cache, err := loadPeriodCache(ctx, c, current)
	if err != nil {
		return err
	}

	if err := c.DeleteEntry(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", *id)

	cache.ApplyDelete(*id)
	printCache(cache)
	return nil
}

func printCache(cache *client.BudgetCache) {
	month, year := cache.Period()
	fmt.Printf("\n%04d-%02d\n", year, month)
	for _, e := range cache.Entries() {
		fmt.Printf("  %s  %-12s income=%-8d expenses=%-8d fixedPays=%-8d %s\n",
			e.ID[:8], util.FormatDate(e.Date), e.Income, e.Expenses, e.FixedPays,
			firstNonEmpty(e.IncomeSource, e.ExpenseRemarks, e.FixedPaysRemarks))
	}
	t := cache.Totals()
	fmt.Printf("totals: income=%d expenses=%d fixedPays=%d left=%d\n",
		t.Income, t.Expenses, t.FixedPays, cache.Left())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

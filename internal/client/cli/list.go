package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/water4699/donationlog/internal/client/models"
	"github.com/water4699/donationlog/internal/client/services"
)

// listView resolves the list arguments against the catalog: an id-substring
// filter plus an "asc"/"desc" sort token, newest records first by default.
func listView(catalog *services.Catalog, args []string) []models.DonationRecord {
	substr := ""
	desc := true
	for _, arg := range args {
		switch arg {
		case "asc":
			desc = false
		case "desc":
			desc = true
		default:
			substr = arg
		}
	}

	records := catalog.Filter(func(r models.DonationRecord) bool {
		return substr == "" || strings.Contains(strconv.FormatUint(r.RecordID, 10), substr)
	})
	return services.SortByID(records, desc)
}

func (a *App) list(ctx context.Context, args []string) {
	records := listView(a.catalog, args)
	if len(records) == 0 {
		fmt.Println("No records. Use 'submit' to record a donation or 'refresh' to reload.")
		return
	}

	fmt.Printf("%-8s %-12s %-20s %s\n", "ID", "AMOUNT", "TIMESTAMP", "BLOCK")
	for _, r := range records {
		fmt.Printf("%-8d %-12s %-20s %d\n", r.RecordID, r.AmountDisplay(), r.TimestampDisplay(), r.SubmittingBlock)
	}
}

func (a *App) refresh(ctx context.Context) {
	records, err := a.catalog.Load(ctx, a.session)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Loaded %d record(s)\n", len(records))
}

func (a *App) level(ctx context.Context) {
	level, err := a.submission.DonationLevel(ctx, a.session)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Donation level: %d\n", level)
}

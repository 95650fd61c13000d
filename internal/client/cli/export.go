package cli

import (
	"context"
	"fmt"
)

func (a *App) exportRecords(ctx context.Context) {
	path, err := a.export.Export(a.catalog.Records())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Exported to", path)
}

package portal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/magabrotheeeer/subscription-portal/internal/lib/datefmt"
	"github.com/magabrotheeeer/subscription-portal/internal/services/view"
)

// Render выводит личный кабинет в текстовом виде.
func Render(w io.Writer, d Dashboard) error {
	c := d.Customer
	fmt.Fprintf(w, "Welcome back, %s!\n\n", c.FirstName)
	fmt.Fprintf(w, "Total Orders: %d\n", c.OrderCount)
	fmt.Fprintf(w, "Customer ID:  %s\n", c.CustomerID)

	if d.Next != nil {
		fmt.Fprintf(w, "Next Payment: %d days (%s - %s)",
			d.Next.DaysUntil, datefmt.Format(d.Next.RawDate), view.FormatPrice(d.Next.Amount))
		if d.Next.IsTrial {
			fmt.Fprint(w, " [Trial Period]")
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	if d.Banner != "" {
		fmt.Fprintf(w, "! %s\n\n", d.Banner)
	}

	fmt.Fprintln(w, "Order History")
	if len(d.Rows) == 0 {
		if d.Total > 0 {
			_, err := fmt.Fprintf(w, "No orders match %q\n", d.Query)
			return err
		}
		_, err := fmt.Fprintln(w, "No order details available")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "S.No.\tProduct Name\tOrder\tDate\tPrice\tOrder Type")
	for i, row := range d.Rows {
		fmt.Fprintf(tw, "%d\t%s\t#%s\t%s\t%s\t%s\n",
			i+1, row.Name, row.OrderID, datefmt.Format(row.OrderDate), view.FormatPrice(row.Price), row.OrderType)
	}
	return tw.Flush()
}

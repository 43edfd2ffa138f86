package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"parts-matching-client/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes tab-separated rows aligned into columns.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// render prints v as JSON when --json is set, otherwise as the table built by rows.
func render(w io.Writer, v any, header []string, rows func() [][]string) error {
	if outputJSON {
		return printJSON(w, v)
	}
	return table(w, header, rows())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func fmtETA(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return strconv.Itoa(*minutes) + " min"
}

func renderOrders(w io.Writer, orders []domain.OrderView) error {
	return render(w, orders,
		[]string{"ID", "STATUS", "URGENCY", "PART", "QTY", "SUPPLIER", "CREATED"},
		func() [][]string {
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{
					o.OrderID, string(o.Status), string(o.Urgency), o.PartName,
					strconv.Itoa(o.Quantity), orDash(o.SupplierName), fmtTime(o.CreatedAt),
				})
			}
			return rows
		})
}

func renderOrderDetail(w io.Writer, d domain.OrderDetail) error {
	if outputJSON {
		return printJSON(w, d)
	}

	o := d.Order
	fmt.Fprintf(w, "Order %s  %s  %s\n", o.OrderID, o.Status, o.Urgency)
	if o.DeliveryAddress != "" {
		fmt.Fprintf(w, "Deliver to: %s\n", o.DeliveryAddress)
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		rows = append(rows, []string{
			l.PartNumber, l.PartName, strconv.Itoa(l.Quantity),
			orDash(l.SupplierName), orDash(string(l.AssignmentStatus)), strconv.Itoa(l.Candidates),
		})
	}
	if err := table(w, []string{"PART", "NAME", "QTY", "SUPPLIER", "ASSIGNMENT", "CANDIDATES"}, rows); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if d.Route == nil {
		fmt.Fprintln(w, "Route: not yet available")
		return nil
	}
	r := d.Route
	fmt.Fprintf(w, "Route: delivery %s  %s  driver %s  ETA %s\n", r.DeliveryID, r.Status, orDash(r.DriverName), fmtETA(r.ETAMinutes))
	fmt.Fprintf(w, "  pickup:  %s\n", orDash(r.Pickup.Address))
	fmt.Fprintf(w, "  dropoff: %s\n", orDash(r.Dropoff.Address))
	return nil
}

func renderInventory(w io.Writer, items []domain.InventoryItemView) error {
	return render(w, items,
		[]string{"ID", "PART", "NAME", "SUPPLIER", "QTY", "PRICE", "LEAD", "STOCK"},
		func() [][]string {
			rows := make([][]string, 0, len(items))
			for _, i := range items {
				stock := "ok"
				switch {
				case !i.InStock:
					stock = "out"
				case i.LowStock:
					stock = "low"
				}
				rows = append(rows, []string{
					i.ID, i.PartNumber, i.Name, orDash(i.SupplierName), strconv.Itoa(i.Quantity),
					fmt.Sprintf("%.2f %s", i.Price, i.Currency), fmt.Sprintf("%dh", i.LeadTimeHours), stock,
				})
			}
			return rows
		})
}

func renderDeliveries(w io.Writer, ds []domain.DeliveryView) error {
	return render(w, ds,
		[]string{"ID", "STATUS", "ORDER", "DRIVER", "STOPS", "NEXT", "ETA"},
		func() [][]string {
			rows := make([][]string, 0, len(ds))
			for _, d := range ds {
				next := "-"
				if d.NextStop != nil {
					next = fmt.Sprintf("%s %s", d.NextStop.Type, orDash(d.NextStop.Address))
				}
				rows = append(rows, []string{
					d.ID, string(d.Status), orDash(d.OrderID), orDash(d.DriverName),
					fmt.Sprintf("%d/%d", d.CompletedStops, d.StopCount), next, fmtTime(d.ETA),
				})
			}
			return rows
		})
}

func renderNotifications(w io.Writer, ns []domain.NotificationView) error {
	return render(w, ns,
		[]string{"ID", "", "CATEGORY", "TITLE", "MESSAGE", "CREATED"},
		func() [][]string {
			rows := make([][]string, 0, len(ns))
			for _, n := range ns {
				mark := "*"
				if n.Read {
					mark = ""
				}
				rows = append(rows, []string{
					n.ID, mark, string(n.Category), n.Title, orDash(n.Message), fmtTime(n.CreatedAt),
				})
			}
			return rows
		})
}

func renderUser(w io.Writer, u domain.SessionUser) error {
	if outputJSON {
		return printJSON(w, u)
	}
	fmt.Fprintf(w, "%s <%s>  role=%s  id=%s\n", u.DisplayName, u.Email, u.Role, u.ID)
	if u.Location != nil {
		fmt.Fprintf(w, "location: %.5f, %.5f\n", u.Location.Lat, u.Location.Lng)
	}
	return nil
}

package services

import (
	"sort"

	"github.com/pkaminski/lakiernia/internal/models"
)

// WorkerStat is the labor rollup for one worker in a period.
type WorkerStat struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
	M2    float64 `json:"m2"`
}

// OrderRevenue ranks one order by its item revenue.
type OrderRevenue struct {
	Number  int     `json:"number"`
	Client  string  `json:"client"`
	Revenue float64 `json:"revenue"`
	M2      float64 `json:"m2"`
}

// Summary is the financial rollup for a date range.
type Summary struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	Revenue       float64        `json:"revenue"`
	TotalM2       float64        `json:"total_m2"`
	LaborCost     float64        `json:"labor_cost"`
	TotalHours    float64        `json:"total_hours"`
	MaterialCost  float64        `json:"material_cost"`
	PurchaseCount int            `json:"purchase_count"`
	FixedCost     float64        `json:"fixed_cost"`
	Profit        float64        `json:"profit"`
	Margin        float64        `json:"margin"` // percent of revenue; 0 when revenue is 0
	OrderCount    int            `json:"order_count"`
	Workers       []WorkerStat   `json:"workers"`
	Orders        []OrderRevenue `json:"orders"`
}

// inRange does an inclusive lexical compare of ISO dates.
func inRange(date, from, to string) bool {
	return date >= from && date <= to
}

// Summarize rolls up orders, work logs, purchases and fixed monthly costs
// over [from, to] (inclusive ISO dates).
//
// Scope contract: revenue counts items of orders whose creation date falls
// in the range; labor and material filter by their own dates; fixed costs
// by the range's month span. This is the date-filtered revenue policy —
// orders created outside the range contribute nothing even if worked on
// inside it.
func Summarize(orders []models.Order, logs []models.WorkLog, purchases []models.PaintPurchase, fixed []models.MonthlyCost, from, to string) Summary {
	sum := Summary{From: from, To: to}

	for _, o := range orders {
		if !inRange(o.CreatedAt.Format("2006-01-02"), from, to) {
			continue
		}
		sum.OrderCount++
		var rev, m2 float64
		for _, it := range o.Items {
			rev += it.TotalPrice
			m2 += it.M2
		}
		sum.Revenue += rev
		sum.TotalM2 += m2
		if rev > 0 {
			sum.Orders = append(sum.Orders, OrderRevenue{
				Number:  o.Number,
				Client:  o.Client.Name,
				Revenue: rev,
				M2:      m2,
			})
		}
	}
	sort.Slice(sum.Orders, func(i, j int) bool { return sum.Orders[i].Revenue > sum.Orders[j].Revenue })

	workerIdx := map[string]int{}
	for _, l := range logs {
		if !inRange(l.Date, from, to) {
			continue
		}
		sum.LaborCost += l.Cost
		sum.TotalHours += l.Hours
		i, ok := workerIdx[l.WorkerName]
		if !ok {
			i = len(sum.Workers)
			workerIdx[l.WorkerName] = i
			sum.Workers = append(sum.Workers, WorkerStat{Name: l.WorkerName})
		}
		sum.Workers[i].Hours += l.Hours
		sum.Workers[i].Cost += l.Cost
		if l.M2Painted != nil {
			sum.Workers[i].M2 += *l.M2Painted
		}
	}
	sort.Slice(sum.Workers, func(i, j int) bool { return sum.Workers[i].Cost > sum.Workers[j].Cost })

	for _, p := range purchases {
		if inRange(p.Date, from, to) {
			sum.MaterialCost += p.Total
			sum.PurchaseCount++
		}
	}

	if len(from) >= 7 && len(to) >= 7 {
		fromMonth, toMonth := from[:7], to[:7]
		for _, mc := range fixed {
			if mc.Month >= fromMonth && mc.Month <= toMonth {
				sum.FixedCost += mc.Total
			}
		}
	}

	sum.Profit = sum.Revenue - sum.LaborCost - sum.MaterialCost - sum.FixedCost
	if sum.Revenue > 0 {
		sum.Margin = sum.Profit / sum.Revenue * 100
	}
	return sum
}

// WorkerReport filters logs by range and optional worker name and rolls up
// hours, cost and painted area per worker.
func WorkerReport(logs []models.WorkLog, from, to, worker string) ([]models.WorkLog, []WorkerStat) {
	var filtered []models.WorkLog
	workerIdx := map[string]int{}
	var stats []WorkerStat
	for _, l := range logs {
		if !inRange(l.Date, from, to) {
			continue
		}
		if worker != "" && l.WorkerName != worker {
			continue
		}
		filtered = append(filtered, l)
		i, ok := workerIdx[l.WorkerName]
		if !ok {
			i = len(stats)
			workerIdx[l.WorkerName] = i
			stats = append(stats, WorkerStat{Name: l.WorkerName})
		}
		stats[i].Hours += l.Hours
		stats[i].Cost += l.Cost
		if l.M2Painted != nil {
			stats[i].M2 += *l.M2Painted
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Cost > stats[j].Cost })
	return filtered, stats
}

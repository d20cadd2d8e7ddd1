package aggregation

import (
	"sort"

	"medstock/model"
)

// AggregateLots folds the parsed product/observation stream into one record
// per (product_code, lot_no). Within a lot, quantities are partitioned by
// store; each store keeps its individual observed quantities in input order
// for audit display, and the lot total is the sum over all stores.
func AggregateLots(products []model.ProductDraft, observations []model.LotObservation) []model.AggregatedLot {
	descriptions := make(map[string]string, len(products))
	for _, p := range products {
		if _, ok := descriptions[p.ProductCode]; !ok {
			descriptions[p.ProductCode] = p.Description
		}
	}

	type lotKey struct {
		productCode string
		lotNo       string
	}

	grouped := make(map[lotKey]*model.AggregatedLot)
	var order []lotKey

	for _, obs := range observations {
		key := lotKey{obs.ProductCode, obs.LotNo}
		lot, ok := grouped[key]
		if !ok {
			lot = &model.AggregatedLot{
				ProductCode:    obs.ProductCode,
				Description:    descriptions[obs.ProductCode],
				LotNo:          obs.LotNo,
				Expiry:         obs.Expiry,
				StoreBreakdown: make(map[string]*model.StoreQuantities),
			}
			grouped[key] = lot
			order = append(order, key)
		}
		if lot.Expiry == nil {
			lot.Expiry = obs.Expiry
		}

		sq, ok := lot.StoreBreakdown[obs.Store]
		if !ok {
			sq = &model.StoreQuantities{}
			lot.StoreBreakdown[obs.Store] = sq
		}
		sq.Observed = append(sq.Observed, obs.Quantity)
		sq.Total += obs.Quantity
		lot.TotalQuantity += obs.Quantity
	}

	result := make([]model.AggregatedLot, 0, len(order))
	for _, key := range order {
		result = append(result, *grouped[key])
	}

	// Product code ascending, then expiry ascending with missing expiry last.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ProductCode != result[j].ProductCode {
			return result[i].ProductCode < result[j].ProductCode
		}
		a, b := result[i].Expiry, result[j].Expiry
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return result
}

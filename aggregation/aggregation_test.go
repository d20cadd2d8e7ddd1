package aggregation

import (
	"math"
	"reflect"
	"testing"
	"time"

	"medstock/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAggregateLotsMergesByProductAndLot(t *testing.T) {
	products := []model.ProductDraft{
		{ProductCode: "P001", Description: "Aspirin"},
	}
	observations := []model.LotObservation{
		{ProductCode: "P001", LotNo: "L1", Quantity: 10, Store: "ST01", Expiry: datePtr(2024, 6, 15)},
		{ProductCode: "P001", LotNo: "L1", Quantity: 5, Store: "ST01"},
		{ProductCode: "P001", LotNo: "L1", Quantity: 7, Store: "ST02"},
	}

	lots := AggregateLots(products, observations)
	if len(lots) != 1 {
		t.Fatalf("expected 1 aggregated lot, got %d", len(lots))
	}

	lot := lots[0]
	if lot.Description != "Aspirin" {
		t.Errorf("expected description from product draft, got %q", lot.Description)
	}
	if lot.TotalQuantity != 22 {
		t.Errorf("expected total 22, got %g", lot.TotalQuantity)
	}

	st01 := lot.StoreBreakdown["ST01"]
	if st01 == nil || !reflect.DeepEqual(st01.Observed, []float64{10, 5}) {
		t.Errorf("ST01 must keep observed quantities in order: %+v", st01)
	}
	if st01.Total != 15 {
		t.Errorf("expected ST01 total 15, got %g", st01.Total)
	}
	if lot.StoreBreakdown["ST02"].Total != 7 {
		t.Errorf("expected ST02 total 7, got %g", lot.StoreBreakdown["ST02"].Total)
	}
}

func TestAggregateLotsTotalsMatchBreakdown(t *testing.T) {
	observations := []model.LotObservation{
		{ProductCode: "P001", LotNo: "L1", Quantity: 1.25, Store: "A"},
		{ProductCode: "P001", LotNo: "L1", Quantity: 2.50, Store: "B"},
		{ProductCode: "P001", LotNo: "L2", Quantity: 4, Store: "A"},
		{ProductCode: "P002", LotNo: "L1", Quantity: 8, Store: "C"},
		{ProductCode: "P002", LotNo: "L1", Quantity: 16, Store: "C"},
	}

	for _, lot := range AggregateLots(nil, observations) {
		var storeSum, observedSum float64
		for _, sq := range lot.StoreBreakdown {
			storeSum += sq.Total
			for _, q := range sq.Observed {
				observedSum += q
			}
		}
		if math.Abs(lot.TotalQuantity-storeSum) > 1e-9 {
			t.Errorf("lot %s/%s: total %g != store sum %g", lot.ProductCode, lot.LotNo, lot.TotalQuantity, storeSum)
		}
		if math.Abs(lot.TotalQuantity-observedSum) > 1e-9 {
			t.Errorf("lot %s/%s: total %g != observed sum %g", lot.ProductCode, lot.LotNo, lot.TotalQuantity, observedSum)
		}
	}
}

func TestAggregateLotsSortOrder(t *testing.T) {
	observations := []model.LotObservation{
		{ProductCode: "P002", LotNo: "L1", Quantity: 1},
		{ProductCode: "P001", LotNo: "NOEXP", Quantity: 1},
		{ProductCode: "P001", LotNo: "LATE", Quantity: 1, Expiry: datePtr(2025, 1, 1)},
		{ProductCode: "P001", LotNo: "SOON", Quantity: 1, Expiry: datePtr(2024, 6, 1)},
	}

	lots := AggregateLots(nil, observations)
	var got []string
	for _, lot := range lots {
		got = append(got, lot.ProductCode+"/"+lot.LotNo)
	}
	want := []string{"P001/SOON", "P001/LATE", "P001/NOEXP", "P002/L1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sort order = %v, want %v", got, want)
	}
}

func TestAggregateLotsEmptyInput(t *testing.T) {
	if lots := AggregateLots(nil, nil); len(lots) != 0 {
		t.Errorf("expected no lots for empty input, got %d", len(lots))
	}
}

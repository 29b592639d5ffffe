package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// SampleMaterials returns the built-in seed batch. Review dates are fixed
// historical values so the due filter has something to find right away.
func SampleMaterials() []types.Material {
	return []types.Material{
		{
			SKUDescription:      "22REW",
			SKUID:               345721,
			CurrentStockKg:      decimal.NewFromInt(1000),
			Price:               decimal.RequireFromString("7.89"),
			LastReview:          date(2022, time.April, 19),
			ResponsibleEmployee: "autoadmfactor@gmail.com",
		},
		{
			SKUDescription:      "32REW",
			SKUID:               345718,
			CurrentStockKg:      decimal.NewFromInt(2000),
			Price:               decimal.RequireFromString("4.20"),
			LastReview:          date(2022, time.April, 18),
			ResponsibleEmployee: "adampolakfactor@gmail.com",
		},
		{
			SKUDescription:      "BYSE",
			SKUID:               345719,
			CurrentStockKg:      decimal.NewFromInt(10000),
			Price:               decimal.RequireFromString("3.00"),
			LastReview:          date(2022, time.April, 17),
			ResponsibleEmployee: "autoadmfactor@gmail.com",
		},
		{
			SKUDescription:      "OILB",
			SKUID:               345729,
			CurrentStockKg:      decimal.NewFromInt(1740),
			Price:               decimal.RequireFromString("11.40"),
			LastReview:          date(2022, time.April, 20),
			ResponsibleEmployee: "adampolakfactor@gmail.com",
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

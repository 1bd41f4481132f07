package statistic

import bCtx "github.com/color-xyz/goapi/base/ctx"

var (
	TotalListings = "totalListings"
	TotalSales    = "totalSales"
	// TotalVolume is the cumulative sale volume in wei, base-10.
	TotalVolume = "totalVolume"
)

type Statistic struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

type StatisticId struct {
	Key string `bson:"key"`
}

func (s *Statistic) ToId() StatisticId {
	return StatisticId{Key: s.Key}
}

type Repo interface {
	FindOne(ctx bCtx.Ctx, key string) (*Statistic, error)
	Upsert(ctx bCtx.Ctx, s *Statistic) error
}

type UseCase interface {
	Get(ctx bCtx.Ctx, key string) (string, error)
	Set(ctx bCtx.Ctx, key string, value string) error
	// AddBigInt adds delta, given in base-10, to the stored value.
	AddBigInt(ctx bCtx.Ctx, key string, delta string) error
}

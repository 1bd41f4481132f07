package usecase

import (
	"math/big"

	bCtx "github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/statistic"
)

type uc struct {
	statisticRepo statistic.Repo
}

func New(repo statistic.Repo) statistic.UseCase {
	return &uc{repo}
}

func (u *uc) Get(ctx bCtx.Ctx, key string) (string, error) {
	s, err := u.statisticRepo.FindOne(ctx, key)
	if err == domain.ErrNotFound {
		return "", err
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("repo.FindOne failed")
		return "", err
	}
	return s.Value, nil
}

func (u *uc) Set(ctx bCtx.Ctx, key string, value string) error {
	s := &statistic.Statistic{Key: key, Value: value}
	err := u.statisticRepo.Upsert(ctx, s)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"s":   s,
		}).Error("repo.Upsert failed")
		return err
	}
	return nil
}

func (u *uc) AddBigInt(ctx bCtx.Ctx, key string, delta string) error {
	d, ok := new(big.Int).SetString(delta, 10)
	if !ok {
		return domain.ErrInvalidNumberFormat
	}

	cur := big.NewInt(0)
	s, err := u.statisticRepo.FindOne(ctx, key)
	if err == nil {
		if cur, ok = new(big.Int).SetString(s.Value, 10); !ok {
			return domain.ErrInvalidNumberFormat
		}
	} else if err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("repo.FindOne failed")
		return err
	}

	return u.Set(ctx, key, new(big.Int).Add(cur, d).String())
}

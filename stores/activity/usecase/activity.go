package usecase

import (
	"time"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain/activity"
)

type impl struct {
	repo activity.Repo
}

func New(repo activity.Repo) activity.UseCase {
	return &impl{repo: repo}
}

func (im *impl) Record(c ctx.Ctx, a *activity.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	if err := im.repo.Insert(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": a.ListingId,
		}).Error("failed to repo.Insert")
		return err
	}
	return nil
}

func (im *impl) FindActivities(c ctx.Ctx, opts ...activity.FindOptions) (*activity.ActivityResult, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to repo.FindAll")
		return nil, err
	}

	cnt, err := im.repo.Count(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to repo.Count")
		return nil, err
	}

	return &activity.ActivityResult{
		Activities: res,
		Count:      cnt,
	}, nil
}

package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/activity"
	"github.com/color-xyz/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) activity.Repo {
	return &impl{q: q}
}

func (im *impl) Insert(c ctx.Ctx, a *activity.Activity) error {
	a.Seller = a.Seller.ToLower()
	a.Buyer = a.Buyer.ToLower()
	a.ContractAddress = a.ContractAddress.ToLower()

	if err := im.q.Insert(c, domain.TableActivities, a); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": a.ListingId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...activity.FindOptions) ([]*activity.Activity, error) {
	res := []*activity.Activity{}

	opt, err := activity.GetFindOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	if opt.Offset != nil {
		offset = int(*opt.Offset)
	}
	if opt.Limit != nil {
		limit = int(*opt.Limit)
	}

	qry := makeQuery(opts...)
	if err := im.q.Search(c, domain.TableActivities, offset, limit, "-createdAt", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *impl) Count(c ctx.Ctx, opts ...activity.FindOptions) (int, error) {
	qry := makeQuery(opts...)
	cnt, err := im.q.Count(c, domain.TableActivities, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}
	return cnt, nil
}

func makeQuery(opts ...activity.FindOptions) bson.M {
	qry := bson.M{}

	opt, err := activity.GetFindOptions(opts...)
	if err != nil {
		return qry
	}

	if opt.Account != nil {
		qry["$or"] = bson.A{
			bson.M{"seller": *opt.Account},
			bson.M{"buyer": *opt.Account},
		}
	}
	if opt.ListingId != nil {
		qry["listingId"] = *opt.ListingId
	}
	if opt.Type != nil {
		qry["type"] = *opt.Type
	}

	return qry
}

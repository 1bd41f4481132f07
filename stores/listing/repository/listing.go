package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/database/mongoclient"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/listing"
	"github.com/color-xyz/goapi/service/query"
)

// counter is the id sequence document. Sequences only move forward so
// listing ids are never reused, even across restarts.
type counter struct {
	Id  string     `bson:"_id"`
	Seq listing.Id `bson:"seq"`
}

const listingIdCounter = "listingId"

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) nextId(ctx ctx.Ctx) (listing.Id, error) {
	res := &counter{}
	if err := im.q.Increment(ctx, domain.TableCounters, bson.M{"_id": listingIdCounter}, res, "seq", 1); err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("failed to q.Increment")
		return 0, err
	}
	// seq holds the count of ids issued so far, so the first listing
	// ever created gets id 0
	return res.Seq - 1, nil
}

func (im *listingRepoImpl) Create(ctx ctx.Ctx, l *listing.Listing) (listing.Id, error) {
	id, err := im.nextId(ctx)
	if err != nil {
		return 0, err
	}

	l.ListingId = id
	l.LowerCase()
	if err := im.q.Insert(ctx, domain.TableListings, l); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to q.Insert")
		return 0, err
	}
	return id, nil
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	res := &listing.Listing{}
	err := im.q.FindOne(ctx, domain.TableListings, bson.M{"listingId": id}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return res, nil
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindOptions) (bson.M, error) {
	options, err := listing.GetFindOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.Seller != nil {
		qry["seller"] = *options.Seller
	}

	if options.ContractAddress != nil {
		qry["contractAddress"] = *options.ContractAddress
	}

	if options.TokenType != nil {
		qry["tokenType"] = *options.TokenType
	}

	return qry, nil
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindOptions) ([]*listing.Listing, error) {
	options, err := listing.GetFindOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("failed to GetFindOptions")
		return nil, err
	}

	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("failed to makeQuery")
		return nil, err
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	sort := "listingId"
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*listing.Listing{}
	if err := im.q.Search(ctx, domain.TableListings, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...listing.FindOptions) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err}).Error("failed to makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) Update(ctx ctx.Ctx, id listing.Id, patchable listing.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("MakeBsonM failed")
		return err
	}

	err = im.q.Patch(ctx, domain.TableListings, bson.M{"listingId": id}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *listingRepoImpl) Delete(ctx ctx.Ctx, id listing.Id) error {
	err := im.q.Remove(ctx, domain.TableListings, bson.M{"listingId": id})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}

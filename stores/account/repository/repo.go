package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/database/mongoclient"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/account"
	"github.com/color-xyz/goapi/domain/keys"
	"github.com/color-xyz/goapi/service/cache"
	"github.com/color-xyz/goapi/service/cache/provider"
	"github.com/color-xyz/goapi/service/cache/provider/compound"
	"github.com/color-xyz/goapi/service/cache/provider/primitive"
	redisCache "github.com/color-xyz/goapi/service/cache/provider/redis"
	"github.com/color-xyz/goapi/service/query"
	"github.com/color-xyz/goapi/service/redis"
)

type impl struct {
	query        query.Mongo
	accountCache cache.Service
}

// New creates new account repo
func New(query query.Mongo, redis redis.Service) account.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive(keys.PfxAccount, 64),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &impl{
		query: query,
		accountCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   keys.PfxAccount,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *impl) Get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	res := &account.Account{}

	if err := im.accountCache.GetByFunc(c, address.ToLowerStr(), res, func() (interface{}, error) {
		return im.get(c, address)
	}); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":     err,
				"address": address,
			}).Error("accountCache.GetByFunc failed")
		}
		return nil, err
	}

	return res, nil
}

func (im *impl) get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	a := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, bson.M{"address": address.ToLower()}, a)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("find account failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) Insert(c ctx.Ctx, a *account.Account) error {
	a.Address = a.Address.ToLower()
	if err := im.query.Insert(c, domain.TableAccounts, a); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": a.Address,
		}).Error("query.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, address domain.Address, updater account.Updater) error {
	updater.UpdatedAt = time.Now()

	update, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.query.Patch(c, domain.TableAccounts, bson.M{"address": address.ToLower()}, update); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("query.Patch failed")
		return err
	}

	if err := im.accountCache.Del(c, address.ToLowerStr()); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("accountCache.Del failed")
	}

	return nil
}

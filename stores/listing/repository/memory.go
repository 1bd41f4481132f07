package repository

import (
	"sort"
	"sync"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/listing"
)

// memoryRepo is the in-process listing store. It is the authoritative
// store in single node deployments and the fixture store in tests.
// The first listing ever created gets id 0.
type memoryRepo struct {
	mu       sync.RWMutex
	nextId   listing.Id
	listings map[listing.Id]*listing.Listing
}

func NewMemoryListingRepo() listing.Repo {
	return &memoryRepo{
		listings: map[listing.Id]*listing.Listing{},
	}
}

func (im *memoryRepo) Create(ctx ctx.Ctx, l *listing.Listing) (listing.Id, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	clone := *l
	clone.ListingId = im.nextId
	im.nextId++
	clone.LowerCase()
	im.listings[clone.ListingId] = &clone
	l.ListingId = clone.ListingId
	return clone.ListingId, nil
}

func (im *memoryRepo) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	l, ok := im.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (im *memoryRepo) match(l *listing.Listing, opts ...listing.FindOptions) (bool, error) {
	options, err := listing.GetFindOptions(opts...)
	if err != nil {
		return false, err
	}
	if options.Seller != nil && !l.Seller.Equals(*options.Seller) {
		return false, nil
	}
	if options.ContractAddress != nil && !l.ContractAddress.Equals(*options.ContractAddress) {
		return false, nil
	}
	if options.TokenType != nil && l.TokenType != *options.TokenType {
		return false, nil
	}
	return true, nil
}

func (im *memoryRepo) findAll(opts ...listing.FindOptions) ([]*listing.Listing, error) {
	res := []*listing.Listing{}
	for _, l := range im.listings {
		ok, err := im.match(l, opts...)
		if err != nil {
			return nil, err
		}
		if ok {
			clone := *l
			res = append(res, &clone)
		}
	}
	return res, nil
}

func (im *memoryRepo) FindAll(ctx ctx.Ctx, opts ...listing.FindOptions) ([]*listing.Listing, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	options, err := listing.GetFindOptions(opts...)
	if err != nil {
		return nil, err
	}

	res, err := im.findAll(opts...)
	if err != nil {
		return nil, err
	}

	desc := options.SortDir != nil && *options.SortDir == domain.SortDirDesc
	sort.Slice(res, func(i, j int) bool {
		if desc {
			return res[i].ListingId > res[j].ListingId
		}
		return res[i].ListingId < res[j].ListingId
	})

	if options.Offset != nil {
		offset := int(*options.Offset)
		if offset > len(res) {
			offset = len(res)
		}
		res = res[offset:]
	}
	if options.Limit != nil && int(*options.Limit) > 0 && int(*options.Limit) < len(res) {
		res = res[:*options.Limit]
	}

	return res, nil
}

func (im *memoryRepo) Count(ctx ctx.Ctx, opts ...listing.FindOptions) (int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	res, err := im.findAll(opts...)
	if err != nil {
		return 0, err
	}
	return len(res), nil
}

func (im *memoryRepo) Update(ctx ctx.Ctx, id listing.Id, patchable listing.Patchable) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	l, ok := im.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patchable.Price != nil {
		l.Price = *patchable.Price
	}
	if patchable.AvailableAmount != nil {
		l.AvailableAmount = *patchable.AvailableAmount
	}
	if patchable.UpdatedAt != nil {
		l.UpdatedAt = *patchable.UpdatedAt
	}
	return nil
}

func (im *memoryRepo) Delete(ctx ctx.Ctx, id listing.Id) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, ok := im.listings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(im.listings, id)
	return nil
}

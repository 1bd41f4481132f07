package usecase

import (
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/base/ptr"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/activity"
	"github.com/color-xyz/goapi/domain/listing"
	"github.com/color-xyz/goapi/domain/nft"
	"github.com/color-xyz/goapi/domain/payment"
	"github.com/color-xyz/goapi/domain/statistic"
)

type ListingUseCaseCfg struct {
	Repo      listing.Repo
	Nft       nft.Port
	Ledger    payment.Ledger
	Activity  activity.UseCase
	Statistic statistic.UseCase
	Emitter   listing.EventEmitter
	// Operator is the marketplace address sellers must approve on the
	// token contract before listing.
	Operator domain.Address
}

type impl struct {
	repo        listing.Repo
	nft         nft.Port
	ledger      payment.Ledger
	activityUC  activity.UseCase
	statisticUC statistic.UseCase
	emitter     listing.EventEmitter
	operator    domain.Address

	// settling tracks listings with a purchase or removal in flight. A
	// transfer that re-enters PurchaseListing or RemoveListItem on the
	// same id is rejected with ErrListingNotAvailable instead of seeing
	// half-settled state.
	settlingMu sync.Mutex
	settling   map[listing.Id]struct{}
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		repo:        cfg.Repo,
		nft:         cfg.Nft,
		ledger:      cfg.Ledger,
		activityUC:  cfg.Activity,
		statisticUC: cfg.Statistic,
		emitter:     cfg.Emitter,
		operator:    cfg.Operator.ToLower(),
		settling:    map[listing.Id]struct{}{},
	}
}

func (im *impl) CreateListing(c ctx.Ctx, seller domain.Address, params listing.CreateListingParams) (listing.Id, error) {
	seller = seller.ToLower()
	params.ContractAddress = params.ContractAddress.ToLower()

	if err := im.validateCreateParams(c, params); err != nil {
		return 0, err
	}
	if err := im.validateSellerHoldings(c, seller, params); err != nil {
		return 0, err
	}

	now := time.Now()
	l := &listing.Listing{
		TokenType:       params.TokenType,
		ContractAddress: params.ContractAddress,
		TokenId:         params.TokenId,
		Seller:          seller,
		Price:           params.Price,
		TotalAmount:     params.Amount,
		AvailableAmount: params.Amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := im.repo.Create(c, l)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"seller": seller,
		}).Error("failed to repo.Create")
		return 0, err
	}

	im.emitter.Emit(c, listing.Event{
		EventId:         uuid.NewString(),
		Type:            listing.EventListingCreated,
		ListingId:       id,
		TokenType:       params.TokenType,
		ContractAddress: params.ContractAddress,
		TokenId:         params.TokenId,
		Seller:          seller,
		Price:           params.Price,
		Amount:          params.Amount,
	})
	im.recordActivity(c, &activity.Activity{
		Type:            activity.ActivityTypeList,
		ListingId:       id,
		TokenType:       params.TokenType,
		ContractAddress: params.ContractAddress,
		TokenId:         params.TokenId,
		Seller:          seller,
		Quantity:        params.Amount,
		Price:           params.Price,
		CreatedAt:       now,
	})
	im.bumpStatistic(c, statistic.TotalListings, "1")

	return id, nil
}

func (im *impl) ListBatchItems(c ctx.Ctx, seller domain.Address, params listing.BatchListingParams) ([]listing.Id, error) {
	if !params.SameLength() {
		return nil, domain.ErrInvalidArrayLength
	}

	created := []listing.Id{}
	for i := 0; i < params.Len(); i++ {
		id, err := im.CreateListing(c, seller, params.At(i))
		if err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"index": i,
			}).Error("failed to CreateListing")
			im.rollbackCreated(c, created)
			return nil, err
		}
		created = append(created, id)
	}

	return created, nil
}

func (im *impl) UpdateListingPrice(c ctx.Ctx, caller domain.Address, id listing.Id, newPrice *big.Int) error {
	l, err := im.findExisting(c, id)
	if err != nil {
		return err
	}
	if l.Seller != caller.ToLower() {
		return domain.ErrNotListingOwner
	}
	if newPrice == nil || newPrice.Sign() <= 0 {
		return domain.ErrPriceMustBeGreaterThanZero
	}

	now := time.Now()
	price := newPrice.String()
	if err := im.repo.Update(c, id, listing.Patchable{
		Price:     ptr.String(price),
		UpdatedAt: &now,
	}); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to repo.Update")
		return err
	}

	im.emitter.Emit(c, listing.Event{
		EventId:         uuid.NewString(),
		Type:            listing.EventListingPriceUpdated,
		ListingId:       id,
		TokenType:       l.TokenType,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
		Seller:          l.Seller,
		Price:           price,
	})
	im.recordActivity(c, &activity.Activity{
		Type:            activity.ActivityTypeUpdateListing,
		ListingId:       id,
		TokenType:       l.TokenType,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
		Seller:          l.Seller,
		Quantity:        l.AvailableAmount,
		Price:           price,
		CreatedAt:       now,
	})

	return nil
}

func (im *impl) RemoveListItem(c ctx.Ctx, caller domain.Address, id listing.Id) error {
	if !im.beginSettlement(id) {
		// a transfer callback cannot cancel a listing it is settling
		return domain.ErrListingNotAvailable
	}
	defer im.endSettlement(id)

	l, err := im.findExisting(c, id)
	if err != nil {
		return err
	}
	if l.Seller != caller.ToLower() {
		return domain.ErrNotListingOwner
	}

	if err := im.repo.Delete(c, id); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to repo.Delete")
		return err
	}

	im.emitter.Emit(c, listing.Event{
		EventId:         uuid.NewString(),
		Type:            listing.EventListingRemoved,
		ListingId:       id,
		TokenType:       l.TokenType,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
		Seller:          l.Seller,
	})
	im.recordActivity(c, &activity.Activity{
		Type:            activity.ActivityTypeCancelListing,
		ListingId:       id,
		TokenType:       l.TokenType,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
		Seller:          l.Seller,
		Quantity:        l.AvailableAmount,
		Price:           l.Price,
		CreatedAt:       time.Now(),
	})

	return nil
}

func (im *impl) PurchaseListing(c ctx.Ctx, buyer domain.Address, id listing.Id, amount int64, payment *big.Int) error {
	if !im.beginSettlement(id) {
		// a transfer callback landed here while the original purchase
		// is still settling the same listing
		return domain.ErrListingNotAvailable
	}
	defer im.endSettlement(id)

	buyer = buyer.ToLower()

	l, err := im.findExisting(c, id)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return domain.ErrAmountMustBeGreaterThanZero
	}
	if buyer == l.Seller {
		return domain.ErrCannotBuyOwnListing
	}
	if l.TokenType == domain.TokenType721 && amount != l.AvailableAmount {
		return domain.ErrCannotBuyPartialERC721
	}
	if amount > l.AvailableAmount {
		return domain.ErrNotEnoughTokensAvailable
	}

	price, err := l.PriceBigInt()
	if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to l.PriceBigInt")
		return err
	}
	total := new(big.Int).Mul(price, big.NewInt(amount))
	if payment == nil || payment.Cmp(total) < 0 {
		return domain.ErrInsufficientPayment
	}

	// mark the inventory sold before touching funds or tokens, so a
	// re-entrant call cannot buy the same units twice
	remaining := l.AvailableAmount - amount
	now := time.Now()
	if err := im.repo.Update(c, id, listing.Patchable{
		AvailableAmount: &remaining,
		UpdatedAt:       &now,
	}); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to repo.Update")
		return err
	}

	// only price*amount moves; the surplus stays with the buyer
	if err := im.ledger.Transfer(c, buyer, l.Seller, total); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"buyer":     buyer,
		}).Error("failed to ledger.Transfer")
		im.rollbackAmount(c, id, l.AvailableAmount)
		return err
	}

	if err := im.nft.Transfer(c, l.TokenType, l.ContractAddress, l.TokenId, l.Seller, buyer, amount); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
			"buyer":     buyer,
		}).Error("failed to nft.Transfer")
		if rerr := im.ledger.Transfer(c, l.Seller, buyer, total); rerr != nil {
			c.WithFields(log.Fields{
				"err":       rerr,
				"listingId": id,
			}).Error("failed to refund ledger.Transfer")
		}
		im.rollbackAmount(c, id, l.AvailableAmount)
		return err
	}

	if remaining == 0 {
		if err := im.repo.Delete(c, id); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("failed to repo.Delete")
			return err
		}
	}

	im.emitter.Emit(c, listing.Event{
		EventId:         uuid.NewString(),
		Type:            listing.EventListingSold,
		ListingId:       id,
		TokenType:       l.TokenType,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
		Seller:          l.Seller,
		Buyer:           buyer,
		Price:           total.String(),
		Amount:          amount,
	})
	im.recordActivity(c, &activity.Activity{
		Type:            activity.ActivityTypeSale,
		ListingId:       id,
		TokenType:       l.TokenType,
		ContractAddress: l.ContractAddress,
		TokenId:         l.TokenId,
		Seller:          l.Seller,
		Buyer:           buyer,
		Quantity:        amount,
		Price:           l.Price,
		CreatedAt:       now,
	})
	im.bumpStatistic(c, statistic.TotalSales, "1")
	im.bumpStatistic(c, statistic.TotalVolume, total.String())

	return nil
}

func (im *impl) ListingExistsById(c ctx.Ctx, id listing.Id) (bool, error) {
	l, err := im.repo.FindOne(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to repo.FindOne")
		return false, err
	}

	return l.AvailableAmount > 0, nil
}

func (im *impl) GetListingDetailsById(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	return im.findExisting(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindOptions) ([]*listing.Listing, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to repo.FindAll")
		return nil, err
	}

	return res, nil
}

// findExisting resolves id to a live listing. Ids never issued or
// already deleted map to ErrListingDoesNotExist; a stored record with
// no inventory left maps to ErrListingNotAvailable.
func (im *impl) findExisting(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	l, err := im.repo.FindOne(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrListingDoesNotExist
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to repo.FindOne")
		return nil, err
	}
	if l.AvailableAmount <= 0 {
		return nil, domain.ErrListingNotAvailable
	}

	return l, nil
}

func (im *impl) validateCreateParams(c ctx.Ctx, params listing.CreateListingParams) error {
	if params.TokenType != domain.TokenType721 && params.TokenType != domain.TokenType1155 {
		return domain.ErrInvalidTokenType
	}
	price, ok := new(big.Int).SetString(params.Price, 10)
	if !ok || price.Sign() <= 0 {
		return domain.ErrPriceMustBeGreaterThanZero
	}
	if params.Amount <= 0 {
		return domain.ErrAmountMustBeGreaterThanZero
	}
	if params.TokenType == domain.TokenType721 && params.Amount != 1 {
		return domain.ErrAmountMustBeGreaterThanZero
	}

	return nil
}

func (im *impl) validateSellerHoldings(c ctx.Ctx, seller domain.Address, params listing.CreateListingParams) error {
	balance, err := im.nft.BalanceOf(c, params.TokenType, params.ContractAddress, params.TokenId, seller)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"seller":  seller,
			"tokenId": params.TokenId,
		}).Error("failed to nft.BalanceOf")
		return err
	}
	if balance.Sign() == 0 {
		return domain.ErrSellerDoesNotOwnToken
	}
	if balance.Cmp(big.NewInt(params.Amount)) < 0 {
		return domain.ErrSellerDoesNotHaveEnoughTokens
	}

	approved, err := im.nft.IsApprovedForAll(c, params.TokenType, params.ContractAddress, seller, im.operator)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"seller": seller,
		}).Error("failed to nft.IsApprovedForAll")
		return err
	}
	if !approved {
		return domain.ErrContractNotApproved
	}

	return nil
}

func (im *impl) beginSettlement(id listing.Id) bool {
	im.settlingMu.Lock()
	defer im.settlingMu.Unlock()
	if _, ok := im.settling[id]; ok {
		return false
	}
	im.settling[id] = struct{}{}
	return true
}

func (im *impl) endSettlement(id listing.Id) {
	im.settlingMu.Lock()
	defer im.settlingMu.Unlock()
	delete(im.settling, id)
}

func (im *impl) rollbackCreated(c ctx.Ctx, ids []listing.Id) {
	for _, id := range ids {
		if err := im.repo.Delete(c, id); err != nil {
			c.WithFields(log.Fields{
				"err":       err,
				"listingId": id,
			}).Error("failed to rollback repo.Delete")
		}
	}
}

func (im *impl) rollbackAmount(c ctx.Ctx, id listing.Id, amount int64) {
	now := time.Now()
	if err := im.repo.Update(c, id, listing.Patchable{
		AvailableAmount: &amount,
		UpdatedAt:       &now,
	}); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": id,
		}).Error("failed to rollback repo.Update")
	}
}

func (im *impl) recordActivity(c ctx.Ctx, a *activity.Activity) {
	if err := im.activityUC.Record(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":       err,
			"listingId": a.ListingId,
		}).Error("failed to activityUC.Record")
	}
}

func (im *impl) bumpStatistic(c ctx.Ctx, key string, delta string) {
	if err := im.statisticUC.AddBigInt(c, key, delta); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"key": key,
		}).Error("failed to statisticUC.AddBigInt")
	}
}

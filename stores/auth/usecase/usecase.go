package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/base/ethereum"
	"github.com/color-xyz/goapi/base/log"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/account"
)

type AuthUseCaseCfg struct {
	JwtSecret string
	// SignatureMsg is the template of the message wallets sign, with a
	// single %s slot for the nonce.
	SignatureMsg string
	Account      account.UseCase
}

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	account      account.UseCase
}

func New(cfg *AuthUseCaseCfg) domain.AuthUseCase {
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		signatureMsg: cfg.SignatureMsg,
		account:      cfg.Account,
	}
}

func (im *impl) GetNonce(c ctx.Ctx, address domain.Address) (string, error) {
	nonce, err := im.account.RotateNonce(c, address)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to account.RotateNonce")
		return "", err
	}

	return strconv.Itoa(int(nonce)), nil
}

func (im *impl) SignToken(c ctx.Ctx, address domain.Address, signature string) (string, error) {
	a, err := im.account.Get(c, address)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to account.Get")
		return "", err
	}

	msg := im.makeMessageWithNonce(strconv.Itoa(int(a.Nonce)))
	if isValid, err := ethereum.ValidateMsgSignature(msg, signature, string(address)); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to ethereum.ValidateMsgSignature")
		return "", err
	} else if !isValid {
		return "", domain.ErrInvalidSignature
	}

	// a nonce signs in at most once
	if _, err := im.account.RotateNonce(c, address); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to account.RotateNonce")
		return "", err
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}

func (im *impl) GetSigningMsgTemplate(c ctx.Ctx) (string, error) {
	return im.signatureMsg, nil
}

func (im *impl) makeMessageWithNonce(nonce string) []byte {
	return []byte(fmt.Sprintf(im.signatureMsg, nonce))
}

package domain

import (
	"github.com/color-xyz/goapi/base/ctx"
	"github.com/golang-jwt/jwt"
)

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

type AuthUseCase interface {
	GetNonce(ctx ctx.Ctx, address Address) (string, error)
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
	GetSigningMsgTemplate(ctx ctx.Ctx) (string, error)
}

package pricefmt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/color-xyz/goapi/domain"
)

func TestFromWei(t *testing.T) {
	req := require.New(t)

	oneEther := new(big.Int).Set(domain.WeiPerEther)
	req.Equal("1", FromWei(oneEther).String())

	half := new(big.Int).Div(domain.WeiPerEther, big.NewInt(2))
	req.Equal("0.5", FromWei(half).String())

	req.Equal("0", FromWei(big.NewInt(0)).String())
}

func TestFromWeiString(t *testing.T) {
	req := require.New(t)

	d, err := FromWeiString("1500000000000000000")
	req.NoError(err)
	req.Equal("1.5", d.String())

	_, err = FromWeiString("not-a-number")
	req.ErrorIs(err, domain.ErrInvalidNumberFormat)
}

func TestToWei(t *testing.T) {
	req := require.New(t)

	d, err := FromWeiString("2000000000000000000")
	req.NoError(err)
	req.Equal("2000000000000000000", ToWei(d).String())
}

package escrow

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// TokenDecimals is the number of decimals of the marketplace token.
const TokenDecimals = 18

// FormatUnits renders an integer amount with the given number of decimals,
// rounded to prec fractional digits.
func FormatUnits(amount *big.Int, decimals int, prec int) string {
	if amount == nil {
		return big.NewFloat(0).Text('f', prec)
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	f := new(big.Float).SetPrec(256).SetInt(amount)
	f.Quo(f, new(big.Float).SetPrec(256).SetInt(unit))
	return f.Text('f', prec)
}

// FormatTokens renders a token amount in whole tokens.
func FormatTokens(amount *big.Int) string {
	return FormatUnits(amount, TokenDecimals, 4)
}

// FormatGwei renders a wei amount in gwei.
func FormatGwei(wei *big.Int) string {
	return formatDiv(wei, params.GWei, 2)
}

// FormatEther renders a wei amount in ether.
func FormatEther(wei *big.Int) string {
	return formatDiv(wei, params.Ether, 8)
}

func formatDiv(v *big.Int, unit float64, prec int) string {
	if v == nil {
		return big.NewFloat(0).Text('f', prec)
	}
	f := new(big.Float).SetPrec(256).SetInt(v)
	f.Quo(f, big.NewFloat(unit))
	return f.Text('f', prec)
}

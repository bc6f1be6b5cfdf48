package vault

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/tokens"
)

// Headline holds the large figures at the top of the open-vault view.
type Headline struct {
	LiquidationPrice            string
	CollateralizationRatio      string
	CollateralizationRatioColor RiskColor

	CurrentPrice      string
	IsStaticPrice     bool
	NextPrice         string
	NextPriceChange   string
	NextPriceColor    ChangeColor
	NextPriceIn       int // minutes
	NextPriceImminent bool

	CollateralLocked    string
	CollateralLockedUSD string
}

// DetailItem is one cell of the vault details table.
type DetailItem struct {
	Label string
	Value string
	Unit  string
}

// Explainer identifies the modal that explains a card.
type Explainer int

const (
	ExplainNone Explainer = iota
	ExplainLiquidationPrice
	ExplainCurrentPrice
	ExplainCollateralLocked
	ExplainNetValue
	ExplainDynamicStopPrice
	ExplainCollateralizationRatio
	ExplainBuyingPower
)

// Card is one vault details card.
type Card struct {
	Title       string
	Value       string
	ValueAfter  string // empty when the after pill is hidden
	ValueBottom string
	BottomColor ChangeColor
	Relevant    bool
	Explainer   Explainer
}

// Cards are the manage-view cards.
type Cards struct {
	LiquidationPrice Card
	CurrentPrice     Card
	CollateralLocked Card
	NetValue         Card
	DynamicStopPrice Card
}

// SummaryItem is one entry of the summary strip under the cards.
type SummaryItem struct {
	Label      string
	Value      string
	ValueAfter string
}

// DisplayModel is everything the shell needs to draw a snapshot.
type DisplayModel struct {
	Stage   Stage
	Phase   Phase
	Step    Step
	Panel   Panel
	Buttons Buttons

	RiskColor     RiskColor
	AfterPill     PillColors
	ShowAfterPill bool

	Headline Headline
	Details  []DetailItem
	Cards    Cards
	Summary  []SummaryItem
	NetValue NetValue
}

// Resolve derives the display model of s with the default percentage
// style. It is pure: equal inputs give equal outputs. The only error is an
// *UnreachableStageError.
func Resolve(s Snapshot, now time.Time) (DisplayModel, error) {
	return ResolveWith(s, now, format.DisplayPercent)
}

// ResolveWith is Resolve with an explicit percentage style. The rounding
// mode is always forced to RoundDown.
func ResolveWith(s Snapshot, now time.Time, pct format.Options) (DisplayModel, error) {
	pct.RoundMode = format.RoundDown
	buttons, err := ResolveButtons(s)
	if err != nil {
		return DisplayModel{}, err
	}

	risk := SnapshotCollRatioColor(s)
	dm := DisplayModel{
		Stage:         s.Stage,
		Phase:         s.Stage.Phase(),
		Step:          s.Stage.Step(),
		Panel:         PanelFor(s.Stage),
		Buttons:       buttons,
		RiskColor:     risk,
		AfterPill:     AfterPillColors(risk),
		ShowAfterPill: s.ShowAfterPill(),
		Headline:      resolveHeadline(s, now, pct),
		Details:       resolveDetails(s, pct),
		NetValue:      NetValueBreakdown(s),
	}
	dm.Cards = resolveCards(s, dm.ShowAfterPill, pct)
	dm.Summary = resolveSummary(s, dm.ShowAfterPill)
	return dm, nil
}

func resolveHeadline(s Snapshot, now time.Time, pct format.Options) Headline {
	symbol := tokens.Get(s.Token).Symbol
	p := s.PriceInfo
	diff := NextPriceDiff(p)
	minutes := MinutesToNextPrice(p, now)

	h := Headline{
		LiquidationPrice:            format.USD(s.AfterLiquidationPrice),
		CollateralizationRatio:      format.Placeholder,
		CollateralizationRatioColor: SnapshotCollRatioColor(s),
		CurrentPrice:                format.USD(p.CurrentCollateralPrice),
		IsStaticPrice:               p.IsStaticCollateralPrice,
		NextPrice:                   format.USD(p.NextCollateralPrice),
		NextPriceChange:             format.Percent(diff, pct),
		NextPriceColor:              PriceChangeColor(diff),
		NextPriceIn:                 minutes,
		NextPriceImminent:           NextPriceImminent(minutes),
		CollateralLocked:            format.Placeholder,
		CollateralLockedUSD:         format.Placeholder,
	}
	if !s.AfterCollateralizationRatio.IsZero() {
		h.CollateralizationRatio = format.RatioPercent(s.AfterCollateralizationRatio, pct)
	}
	if s.DepositAmount.Valid {
		h.CollateralLocked = format.Amount(s.DepositAmount.Decimal, symbol) + " " + symbol
	}
	if s.DepositAmountUSD.Valid {
		h.CollateralLockedUSD = format.USD(s.DepositAmountUSD.Decimal)
	}
	return h
}

func resolveDetails(s Snapshot, pct format.Options) []DetailItem {
	symbol := tokens.Get(s.Token).Symbol
	free := s.AfterFreeCollateral
	if free.IsNegative() {
		free = decimal.Zero
	}
	ilk := s.IlkData

	return []DetailItem{
		{Label: "Vault Dai Debt", Value: format.Amount(orZero(s.GenerateAmount), "DAI"), Unit: "DAI"},
		{Label: "Available to Withdraw", Value: format.Amount(free, symbol), Unit: symbol},
		{Label: "Available to Generate", Value: format.Amount(s.MaxGenerateAmountCurrentPrice, "DAI"), Unit: "DAI"},
		{Label: "Liquidation Ratio", Value: format.RatioPercent(ilk.LiquidationRatio, pct)},
		{Label: "Stability Fee", Value: format.RatioPercent(ilk.StabilityFee, pct)},
		{Label: "Liquidation Penalty", Value: format.RatioPercent(ilk.LiquidationPenalty, pct)},
	}
}

func resolveCards(s Snapshot, showAfter bool, pct format.Options) Cards {
	symbol := tokens.Get(s.Token).Symbol
	after := func(v string) string {
		if !showAfter {
			return ""
		}
		return v
	}

	// Liquidation price.
	liq := Card{
		Title:      "Liquidation Price",
		Value:      format.USD(s.LiquidationPrice),
		ValueAfter: after(format.USD(s.AfterLiquidationPrice)),
		Relevant:   true,
		Explainer:  ExplainLiquidationPrice,
	}
	if diff := LiquidationPriceDifference(s.LiquidationPrice, s.PriceInfo.CurrentCollateralPrice); diff.Valid && !s.LiquidationPrice.IsZero() {
		liq.ValueBottom = format.RatioPercent(diff.Decimal.Abs(), pct) +
			" " + RelativeWord(diff.Decimal) + " current price"
	}

	// Current price.
	p := s.PriceInfo
	cur := Card{
		Title:     "Current Price",
		Value:     format.USD(p.CurrentCollateralPrice),
		Relevant:  true,
		Explainer: ExplainCurrentPrice,
	}
	if !p.IsStaticCollateralPrice {
		cur.ValueBottom = "Next " + format.USD(p.NextCollateralPrice) + " " +
			format.RatioPercent(p.CollateralPricePercentageChange, pct)
		cur.BottomColor = PriceChangeColor(p.CollateralPricePercentageChange)
	}

	// Collateral locked.
	locked, lockedUSD := decimal.Zero, decimal.Zero
	if s.Vault != nil {
		locked, lockedUSD = s.Vault.LockedCollateral, s.Vault.LockedCollateralUSD
	}
	col := Card{
		Title:       "Collateral Locked",
		Value:       format.USD(lockedUSD),
		ValueAfter:  after(format.USD(lockedUSD.Add(orZero(s.DepositAmountUSD)))),
		ValueBottom: format.Amount(locked, symbol) + " " + symbol,
		Relevant:    true,
		Explainer:   ExplainCollateralLocked,
	}

	// Net value.
	net := Card{
		Title:       "Net Value",
		Value:       format.USD(s.NetValueUSD),
		ValueAfter:  after(format.USD(s.AfterNetValueUSD)),
		ValueBottom: "Unrealised PnL " + format.RatioPercent(s.CurrentPnL, pct),
		Relevant:    true,
		Explainer:   ExplainNetValue,
	}

	// Dynamic stop price.
	sl := s.StopLoss
	dsp := DynamicStopPrice(s.LiquidationPrice, s.IlkData.LiquidationRatio, sl.SlRatio)
	var afterLiq decimal.NullDecimal
	if showAfter {
		afterLiq = Some(s.AfterLiquidationPrice)
	}
	stop := Card{
		Title:       "Dynamic Stop Price",
		Value:       format.NotApplicable,
		ValueBottom: format.NotApplicable,
		ValueAfter:  after(format.USD(AfterDynamicStopPrice(afterLiq, sl.AfterSlRatio, s.IlkData.LiquidationRatio))),
		Relevant:    sl.IsProtected,
		Explainer:   ExplainDynamicStopPrice,
	}
	if sl.IsProtected {
		stop.Value = format.USD(dsp)
		stop.ValueBottom = format.USD(dsp.Sub(s.LiquidationPrice)) + " above liquidation price"
	}

	return Cards{
		LiquidationPrice: liq,
		CurrentPrice:     cur,
		CollateralLocked: col,
		NetValue:         net,
		DynamicStopPrice: stop,
	}
}

func resolveSummary(s Snapshot, showAfter bool) []SummaryItem {
	symbol := tokens.Get(s.Token).Symbol
	debt, collateral := decimal.Zero, decimal.Zero
	if s.Vault != nil {
		debt, collateral = s.Vault.Debt, s.Vault.LockedCollateral
	}

	items := []SummaryItem{
		{Label: "Vault Dai Debt", Value: format.Amount(debt, "DAI") + " DAI"},
		{Label: "Total " + symbol + " exposure", Value: format.CryptoBalance(collateral) + " " + symbol},
		{Label: "Multiple", Value: format.Multiple(decimal.Zero) + " exposure"},
	}
	if showAfter {
		items[0].ValueAfter = format.Amount(s.AfterOutstandingDebt, "DAI") + " DAI"
		items[1].ValueAfter = format.CryptoBalance(orZero(s.TotalCollateral)) + " " + symbol
		if s.Multiply.Valid {
			items[2].ValueAfter = format.Multiple(s.Multiply.Decimal)
		}
	}
	return items
}

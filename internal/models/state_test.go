package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_HasNoUser(t *testing.T) {
	s := Seed()
	assert.Nil(t, s.User)
	assert.Len(t, s.Accounts, 4)
	assert.Len(t, s.Transactions, 5)
	assert.Len(t, s.Categories, 6)
	assert.Len(t, s.Portfolio, 4)
}

func TestSeed_ReturnsFreshValue(t *testing.T) {
	a := Seed()
	a.Accounts[0].Name = "changed"
	b := Seed()
	assert.Equal(t, "中國信託薪轉戶", b.Accounts[0].Name)
}

func TestClone_IsIndependent(t *testing.T) {
	s := Seed()
	u := SeedUser
	s.User = &u

	c := s.Clone()
	c.Accounts[0].Balance = decimal.NewFromInt(1)
	c.Portfolio = append(c.Portfolio, Stock{Symbol: "TSLA"})
	c.User.Name = "other"

	assert.True(t, s.Accounts[0].Balance.Equal(decimal.NewFromInt(150000)))
	assert.Len(t, s.Portfolio, 4)
	assert.Equal(t, "王小明", s.User.Name)
}

func TestClone_Nil(t *testing.T) {
	var s *AppState
	c := s.Clone()
	require.NotNil(t, c)
	assert.Empty(t, c.Accounts)
}

func TestWithoutUser(t *testing.T) {
	s := Seed()
	u := SeedUser
	s.User = &u

	stripped := s.WithoutUser()
	assert.Nil(t, stripped.User)
	assert.NotNil(t, s.User, "original keeps its user")
}

func TestFind(t *testing.T) {
	s := Seed()
	require.NotNil(t, s.FindAccount("a2"))
	assert.Equal(t, "錢包現金", s.FindAccount("a2").Name)
	assert.Nil(t, s.FindAccount("missing"))

	require.NotNil(t, s.FindCategory("c5"))
	assert.Equal(t, CategoryTypeIncome, s.FindCategory("c5").Type)
	assert.Nil(t, s.FindCategory("c99"))

	require.NotNil(t, s.FindStock("NVDA"))
	assert.Nil(t, s.FindStock("nvda"), "symbols are matched exactly")
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2023, time.October, 5)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-10-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"10/05/2023"`), &back))
}

func TestDate_SameMonth(t *testing.T) {
	assert.True(t, MustParseDate("2023-10-01").SameMonth(MustParseDate("2023-10-31")))
	assert.False(t, MustParseDate("2023-10-01").SameMonth(MustParseDate("2024-10-01")))
	assert.False(t, MustParseDate("2023-10-01").SameMonth(MustParseDate("2023-11-01")))
}

func TestRegionCurrency(t *testing.T) {
	assert.Equal(t, "TWD", RegionTW.Currency())
	assert.Equal(t, "USD", RegionUS.Currency())
	assert.Equal(t, "AAPL", NormalizeSymbol("  aapl "))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "銀行", AccountTypeBank.Label())
	assert.Equal(t, "收入", TransactionTypeIncome.Label())
	assert.Equal(t, "轉帳", TransactionTypeTransfer.Label())
	assert.True(t, AccountTypeCredit.Valid())
	assert.False(t, AccountType("LOAN").Valid())
}

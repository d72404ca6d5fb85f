package models

import "github.com/shopspring/decimal"

// SeedUser is the demo principal used by local tooling. Seed snapshots never carry it.
var SeedUser = User{
	ID:        "u1",
	Name:      "王小明",
	Email:     "ming@example.com",
	AvatarURL: "https://picsum.photos/200/200",
}

// Seed returns the built-in snapshot used when nothing has been persisted yet.
// Every call returns a fresh value with no user attached.
func Seed() *AppState {
	d := decimal.NewFromInt
	return &AppState{
		Accounts: []Account{
			{ID: "a1", Name: "中國信託薪轉戶", Type: AccountTypeBank, Balance: d(150000), Currency: "TWD", BankName: "CTBC", AccountNumber: "****1234"},
			{ID: "a2", Name: "錢包現金", Type: AccountTypeCash, Balance: d(3500), Currency: "TWD"},
			{ID: "a3", Name: "玉山證券戶", Type: AccountTypeInvestment, Balance: d(50000), Currency: "TWD"},
			{ID: "a4", Name: "Richart", Type: AccountTypeBank, Balance: d(80000), Currency: "TWD"},
		},
		Transactions: []Transaction{
			{ID: "t1", AccountID: "a1", Type: TransactionTypeIncome, Amount: d(65000), Date: MustParseDate("2023-10-05"), CategoryID: "c5", Note: "十月薪資"},
			{ID: "t2", AccountID: "a2", Type: TransactionTypeExpense, Amount: d(120), Date: MustParseDate("2023-10-06"), CategoryID: "c1", Note: "午餐"},
			{ID: "t3", AccountID: "a2", Type: TransactionTypeExpense, Amount: d(500), Date: MustParseDate("2023-10-07"), CategoryID: "c2", Note: "悠遊卡儲值"},
			{ID: "t4", AccountID: "a4", Type: TransactionTypeExpense, Amount: d(25000), Date: MustParseDate("2023-10-10"), CategoryID: "c3", Note: "房租"},
			{ID: "t5", AccountID: "a2", Type: TransactionTypeExpense, Amount: d(1200), Date: MustParseDate("2023-10-12"), CategoryID: "c4", Note: "看電影與聚餐"},
		},
		Categories: []Category{
			{ID: "c1", Name: "飲食", Icon: "Utensils", Color: "#ef4444", Type: CategoryTypeExpense},
			{ID: "c2", Name: "交通", Icon: "Bus", Color: "#f59e0b", Type: CategoryTypeExpense},
			{ID: "c3", Name: "居住", Icon: "Home", Color: "#3b82f6", Type: CategoryTypeExpense},
			{ID: "c4", Name: "娛樂", Icon: "Gamepad2", Color: "#8b5cf6", Type: CategoryTypeExpense},
			{ID: "c5", Name: "薪資", Icon: "Banknote", Color: "#10b981", Type: CategoryTypeIncome},
			{ID: "c6", Name: "投資收益", Icon: "TrendingUp", Color: "#06b6d4", Type: CategoryTypeIncome},
		},
		Portfolio: []Stock{
			{Symbol: "2330", Name: "台積電", Region: RegionTW, Quantity: d(1000), AvgCost: d(550), CurrentPrice: d(1000), Currency: "TWD"},
			{Symbol: "0050", Name: "元大台灣50", Region: RegionTW, Quantity: d(2000), AvgCost: d(120), CurrentPrice: d(150), Currency: "TWD"},
			{Symbol: "AAPL", Name: "Apple Inc.", Region: RegionUS, Quantity: d(50), AvgCost: d(150), CurrentPrice: d(180), Currency: "USD"},
			{Symbol: "NVDA", Name: "NVIDIA", Region: RegionUS, Quantity: d(20), AvgCost: d(400), CurrentPrice: d(900), Currency: "USD"},
		},
	}
}

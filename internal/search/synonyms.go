package search

// DefaultSynonyms maps knowledge-base domain terms to related terms used
// for query expansion. The table targets a Russian construction-retail
// assistant, with a few English entries for mixed-language queries.
//
// Keys must be lowercase single tokens; values are appended to queries
// as-is.
var DefaultSynonyms = map[string][]string{
	// Russian
	"доставка": {"привезти", "привоз", "транспортировка"},
	"возврат":  {"вернуть", "обмен", "сдать"},
	"цена":     {"стоимость", "прайс", "сколько"},
	"скидка":   {"акция", "распродажа", "дешевле"},
	"товар":    {"продукт", "продукция", "изделие"},
	"покупка":  {"заказ", "купить", "приобрести"},
	"оплата":   {"платеж", "оплатить", "способ оплаты"},
	"магазин":  {"склад", "точка", "филиал"},
	"гарантия": {"гарантийный", "warranty"},
	"бонус":    {"баллы", "кэшбэк", "cashback"},

	// English
	"delivery": {"shipping", "ship", "transport"},
	"return":   {"refund", "exchange", "money back"},
	"price":    {"cost", "pricing", "rate"},
	"discount": {"sale", "promo", "offer"},
}

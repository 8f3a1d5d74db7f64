package view

// Reply texts of the command surface. Placeholders are fmt verbs.
const (
	StartMessage = `Welcome to the market!

/sell "item name or uid" quantity price — publish a week-long sale
/buy saleUid — claim an ongoing sale
/list [query] — list ongoing sales (all, or matching the query)
/search query — find sellable items by name or uid
/uid uid — look an item up by its uid`

	SellUsage         = `All params ([item] [quantity] [price]) must be specified in order to make a sale!`
	SellInvalidNumber = `Quantity and price must be positive whole numbers.`
	SellAccepted      = `Your sale of [%d] units of [%s] for [%d] has been accepted and published`
	SellAmbiguous     = `Your sale of [%s] matched multiple items. Please make your offer again with a more specific argument (uid's are also accepted). Potential matches: %s`
	SellItemUnknown   = `Your sale of [%s] did not match any sellable item. Check the name and try again.`

	BuyUsage    = `The Sale's UID is required in order to buy!`
	BuyMiss     = `Your buy request for ID [%s] did not match any ongoing sales. Maybe it has been bought already? Check ID and try again.`
	BuyCongrats = `Congratulations! You have bought [%d] units of [%s] for [%d]! I have already messaged the seller [%s] with details of the transaction. Message them to complete delivery.`
	SellerSold  = `Congratulations! Your sale of [%d] units of [%s] for [%d] has been bought by [%s]! Message the buyer to complete the transaction!`

	ListEmpty       = `No sales currently going on`
	ListEmptyQuery  = `No sales currently going on for query [%s]`
	ListHeader      = `The following sales are currently undergoing:`
	ListHeaderQuery = `The following sales are currently undergoing for query [%s]:`

	SearchUsage  = `You must specify something to search!`
	SearchEmpty  = `Your search for ['%s'] awarded 0 results.`
	SearchResult = `Your search for ['%s'] awarded %s and was completed in %.4f seconds.`

	InternalError = `Something went wrong processing your command. Please try again.`
)

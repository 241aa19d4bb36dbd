package biz

// DefaultRoutes are the shipped intent routes with their reference
// utterances.
func DefaultRoutes() []Route {
	return []Route{
		{
			Name: IntentFAQ,
			Utterances: []string{
				"What is the return policy of the products?",
				"What is the refund policy?",
				"Can I get a refund?",
				"How do refunds work?",
				"How long does it take to get a refund?",
				"How do I request a refund?",
				"Tell me about the refund policy",
				"Refund policy details",
				"I want to know the refund policy",
				"What happens if I want a refund?",
				"How can I claim a refund?",
				"Do I get discount with the HDFC credit card?",
				"How can I track my order?",
				"What payment methods are accepted?",
				"How long does it take to process a refund?",
				"What happens if I receive a defective product?",
				"How do I return a faulty item?",
				"How do I report a damaged product?",
				"Do you accept cash?",
				"Can I pay with cash?",
				"Is cash an accepted payment method?",
				"What types of payments do you accept?",
				"Can I pay with UPI, card, or cash?",
			},
		},
		{
			Name: IntentSQL,
			Utterances: []string{
				"I want to buy nike shoes that have 50% discount.",
				"Are there any shoes under Rs. 3000?",
				"Do you have formal shoes in size 9?",
				"Are there any Puma shoes on sale?",
				"What is the price of puma running shoes?",
				"I want to buy nike shoes that have 50% discount.",
				"Are there any shoes under Rs. 3000?",
				"Do you have formal shoes in size 9?",
				"Are there any Puma shoes on sale?",
				"What is the price of puma running shoes?",
				"Show me top 3 nike shoes with rating higher than 4.5.",
				"List top-rated Adidas shoes.",
				"Show best 5 Puma shoes by rating.",
				"What are the highest rated Reebok shoes?",
				"Give me shoes sorted by rating.",
				"I want highly rated sports shoes.",
				"Top selling shoes this month.",
				"Find shoes with more than 4 star rating.",
				"List shoes with excellent ratings.",
				"I want shoes with highest discounts and best ratings.",
			},
		},
		{
			Name: IntentSmallTalk,
			Utterances: []string{
				"How are you?",
				"What is your name?",
				"Who are you?",
				"Are you a robot?",
				"Are you an AI?",
				"What are you?",
				"What do you do?",
				"Tell me about yourself.",
				"Can you tell me your name?",
				"Are you human?",
			},
		},
	}
}

package enrichment

import "fmt"

const systemPrompt = "You are a financial SMS analyzer that extracts transaction information accurately."

func userPrompt(body string) string {
	return fmt.Sprintf(`Analyze the following bank SMS message and extract key information.

SMS: %q

Return a JSON object with these fields:
- "transaction_type": "credit" if money was added to the account, "debit" if money was spent or withdrawn
- "amount": the transaction amount as a number, no currency symbols
- "category": one of "salary", "shopping", "food", "transfer", "bill_payment", "atm_withdrawal", "upi_payment", "uncategorized"
- "description": short description of the transaction
- "date": the transaction date in "YYYY-MM-DD" format, or null
- "account_info": masked account number, or null
- "balance": remaining balance as a number, or null

Return ONLY valid raw JSON.
Do NOT wrap the response in code fences.
Do NOT add any explanation.`, body)
}

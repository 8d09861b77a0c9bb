package ai

import "strings"

// invoiceExtractionPrompt is shared by every provider. The normalizer still
// tolerates fences and prose, so this only improves the odds.
const invoiceExtractionPrompt = `You are reading a purchase invoice issued by an Indian supplier. Extract the details below and return ONLY a JSON object with these keys:
{
  "vendor_name": "<supplier legal or trade name>",
  "gstin": "<supplier GSTIN, 15 characters>",
  "invoice_number": "<invoice number as printed>",
  "invoice_date": "YYYY-MM-DD",
  "place_of_supply": "<state name or code>",
  "total_amount": <invoice grand total as a number>,
  "taxable_value": <taxable value before tax>,
  "igst": <integrated tax amount>,
  "cgst": <central tax amount>,
  "sgst": <state/UT tax amount>,
  "cess": <cess amount>
}

Rules:
- The GSTIN belongs to the supplier, not the buyer.
- Amounts are plain numbers in rupees without currency symbols or separators.
- If a field is not printed on the invoice, use null.
- Do not include any text before or after the JSON.`

// mediaFormat turns "image/png" into "png", the form genai.ImageData expects.
func mediaFormat(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mediaType, '/'); i != -1 {
		return mediaType[i+1:]
	}
	if mediaType == "" {
		return "jpeg"
	}
	return mediaType
}

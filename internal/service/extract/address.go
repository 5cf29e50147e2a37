package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

// cityPattern is the gazetteer of Indian cities and states used to anchor
// free-text address detection.
var cityPattern = regexp.MustCompile(`(?i)(?:Ambala|Delhi|Mumbai|Chennai|Kolkata|Bangalore|Hyderabad|Pune|Ahmedabad|Jaipur|Lucknow|Kanpur|Nagpur|Indore|Thane|Bhopal|Visakhapatnam|Patna|Vadodara|Ghaziabad|Ludhiana|Agra|Nashik|Faridabad|Meerut|Rajkot|Kalyan|Vasai|Varanasi|Srinagar|Aurangabad|Dhanbad|Amritsar|Navi Mumbai|Allahabad|Ranchi|Howrah|Coimbatore|Jabalpur|Gwalior|Vijayawada|Jodhpur|Madurai|Raipur|Kota|Chandigarh|Guwahati|Solapur|Hubli|Dharwad|Bareilly|Moradabad|Mysore|Tiruchirappalli|Shimla|Bhilai|Jamshedpur|Bhubaneswar|Salem|Warangal|Jalgaon|Guntur|Bhiwandi|Saharanpur|Gorakhpur|Bikaner|Amravati|Noida|Bokaro|Akola|Belgaum|Karnal|Bhagalpur|Mangalore|Muzaffarnagar|Ujjain|Nellore|Jammu|Kharagpur|Darbhanga|Kollam|Kozhikode|Erode|Rourkela|Shillong|Thrissur|Kakinada|Aligarh|Bhavnagar|Bilaspur|Cuttack|Mathura|Panihati|Latur|Dhule|Rohtak|Korba|Bhilwara|Brahmapur|Muzaffarpur|Ahmednagar|Rampur|Shimoga|Vellore|Ganganagar|Tumkur|Palakkad|Sambalpur|Bardhaman|Kulti|Sasaram|Hapur|Ongole|Nizamabad|Malkajgiri|Parbhani|Khammam|Bihar Sharif|Panipat|Durgapur|Bally|Ulhasnagar|Jamnagar|Satara|Alwar|Dewas|Haldia|Nandyal|Ozhukarai|Kadapa|Anantapuram|Kurnool|Bathinda|Ramagundam|Karimnagar|Arrah|Puducherry|Yamunanagar|Bihariganj|Bhadravati|Khandwa|Bhind|Chandrapur|Farrukhabad|Haryana|Punjab|Uttar Pradesh|Maharashtra|Tamil Nadu|Karnataka|Gujarat|Rajasthan|West Bengal|Madhya Pradesh)`)

const (
	maxAddresses       = 2
	cityNotSpecified   = "City not specified"
	minAddressTagLen   = 15
	minGenericTextLen  = 50
	maxGenericTextLen  = 300
	addressTagValueCap = 200
	genericValueCap    = 150
)

// Addresses finds postal addresses in dedicated <address> elements and in
// generic text blocks that mention a known city. At most two survive,
// deduplicated by normalized text, in document order.
func Addresses(html, sourceURL string) []entity.ContactSignal {
	if html == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var candidates []entity.ContactSignal

	doc.Find("address").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		if len([]rune(text)) < minAddressTagLen {
			return
		}
		city := firstCity(text)
		candidates = append(candidates, entity.ContactSignal{
			Value:       truncate(text, addressTagValueCap),
			Source:      sourceURL,
			Kind:        entity.SignalAddress,
			Description: "Business Address - " + city,
			City:        city,
		})
	})

	doc.Find("p, div, span").Each(func(_ int, sel *goquery.Selection) {
		text := collapseSpace(sel.Text())
		length := len([]rune(text))
		if length <= minGenericTextLen || length >= maxGenericTextLen {
			return
		}
		city := cityPattern.FindString(text)
		if city == "" {
			return
		}
		candidates = append(candidates, entity.ContactSignal{
			Value:       truncate(text, genericValueCap),
			Source:      sourceURL,
			Kind:        entity.SignalAddress,
			Description: "Business Location - " + city,
			City:        city,
		})
	})

	return dedupeByValue(candidates, maxAddresses)
}

func firstCity(text string) string {
	if city := cityPattern.FindString(text); city != "" {
		return city
	}
	return cityNotSpecified
}

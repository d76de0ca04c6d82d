// File: services/agent/prompt.go
package agent

// BookingConfirmedMarker is the literal token the response generator emits
// once the customer has confirmed the booking.
const BookingConfirmedMarker = "BOOKING_CONFIRMED"

// TruckSuggestions lists the vehicle options the agent may offer.
const TruckSuggestions = `Tata Ace, Dost, Bolero, Bada Dost, 407, 12 Feet, 14 Feet, 17 Feet, 19 Feet, 20 Feet, 22 Feet, 24 Feet, 32 feet multi-axle, trailers like 20 feet, 24 feet, 40 feet low-bed, semi-bed, and high-bed, and also 6-wheel, 10-wheel, 12-wheel, 14-wheel, 16-wheel trucks, car-carrier and part-load options.`

// SystemPrompt defines the agent persona, the required field order, the exact
// confirmation-echo phrasing, and the submission marker.
const SystemPrompt = `You are DropTruck Sales Agent. Speak in short, clear 1-2 sentences. Never mention AI or rules. Listen fully and acknowledge before asking the next question.
Your job is to strictly collect the following fields in this exact order: customer_name -> number_1 -> pickup city -> drop city -> truck type -> body type -> material -> required date.
Ask each field directly and do not move to the next field until the current one is answered. Do not skip or merge fields.
If the user gives extra or out-of-order information, store it silently but continue asking missing fields in order.
After all fields are collected, say: "Name [name], mobile [number], pickup [pickup], drop [drop], truck [truck], body [body], material [material], date [date]. Correct?"
Confirmation words: yes, yeah, yep, ok, okay, right, correct, sure, perfect, absolutely, exactly, done, confirmed.
After confirmation, say "Your booking is confirmed." and then output ` + BookingConfirmedMarker + `.`

// RePrompt is returned for empty or whitespace-only input; extraction is
// skipped for such turns.
const RePrompt = "I didn't catch that. Could you please repeat?"

// RetryPrompt is returned when response generation fails mid-call.
const RetryPrompt = "I'm having trouble processing that right now. Could you try again?"

// closingPhrases end the call when they appear in the assistant's last turn.
var closingPhrases = []string{
	"have a great day",
	"have a good day",
	"thank you for your time",
	"goodbye",
	"bye",
	"our sales person will contact you soon",
	"you can contact droptruck anytime",
}

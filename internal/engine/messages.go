package engine

import (
	"fmt"
	"strings"

	"shopbot/internal/order"
)

func msgWelcome(shopName string) string {
	return fmt.Sprintf(`Welcome to %s! 👋

We offer the latest iPhone models at great prices.
Send us a message to check stock, prices, or place an order.
We’re here to help you 24/7! 💼

Select phone condition:`, shopName)
}

const msgHelp = "🤖 I didn't understand that.\nTo start using the bot, type:\n/start\nor say Hi, Hello, or Hey"

const msgReprompt = "🤖 I didn't understand that. Please pick one of the options below."

const msgSelectModel = "Select model:"

const msgSelectStorage = "Select storage:"

const msgPickColor = "Pick color or type your own:"

const msgEnterName = "Enter full name:"

const msgEnterPhone = "Enter phone number:"

const msgWaitingForAdmin = "⏳ Your order is waiting for admin confirmation."

const msgProofForwarded = "⏳ Payment proof sent. Waiting for admin approval."

const msgSendScreenshot = "Please send the payment screenshot as a photo."

const msgPaymentApproved = "✅ Payment confirmed! Will you pick up or delivery?"

const msgPaymentSkipped = "✅ You skipped payment. Now choose pickup or delivery:"

const msgShareLocation = "📍 Please share your location for delivery."

const msgRestart = "🔄 Starting a new order. Select phone condition:"

const msgNewOrderOffer = "🔄 Want to place a new order? Tap below to start:"

func msgOrderSummary(o *order.Order) string {
	return fmt.Sprintf(`🛒 ORDER SUMMARY
Order ID: %s

Model: %s
Condition: %s
Storage: %s
Color: %s

Name: %s
Phone: %s`, o.ID, o.Model, o.Condition, o.Storage, o.Color, o.Name, o.Phone)
}

func msgAdminNewOrder(o *order.Order) string {
	price := o.Price
	if price == "" {
		price = "Pending"
	}
	return fmt.Sprintf(`🟡 NEW ORDER
Order ID: %s
Model: %s
Condition: %s
Storage: %s
Color: %s
Customer: %s
Phone: %s
Price: %s`, o.ID, o.Model, o.Condition, o.Storage, o.Color, o.Name, o.Phone, price)
}

func msgEnterPrice(o *order.Order) string {
	return fmt.Sprintf("💚 Order %s confirmed. Enter price:", o.ID)
}

func msgPriceSent(o *order.Order) string {
	return fmt.Sprintf("💚 Price sent for order %s", o.ID)
}

func msgPriceProposal(o *order.Order, currency string) string {
	return fmt.Sprintf("✅ Your order (%s) is available!\n💰 Price: %s %s\nDo you want to proceed?", o.ID, currency, o.Price)
}

func msgPaymentInstructions(number, account string) string {
	return fmt.Sprintf(`💳 Please make payment:

📞 %s
Account Name: %s

Send screenshot or tap Skip Payment.`, number, account)
}

func msgPaymentReceivedCaption(o *order.Order) string {
	return fmt.Sprintf("💳 PAYMENT RECEIVED\nOrder: %s\nCustomer: %s", o.ID, o.Name)
}

func msgPaymentRejected(reason string) string {
	return fmt.Sprintf("❌ Payment rejected. Reason: %s\nYou can retry or skip.", reason)
}

func msgEnterRejectReason(o *order.Order) string {
	return fmt.Sprintf("Provide reason for rejecting payment of %s:", o.ID)
}

func msgOutOfStock(o *order.Order) string {
	return fmt.Sprintf("❌ Sorry, your order (%s) is out of stock. Restart if you want to order again.", o.ID)
}

func msgOrderCancelled(o *order.Order) string {
	return fmt.Sprintf("❌ Order (%s) cancelled. Restarting order...", o.ID)
}

func msgDeliveryLocation(o *order.Order) string {
	return fmt.Sprintf("📍 Delivery location for order %s:\n%s", o.ID, mapLink(o.Location))
}

func msgPromptBusy(orderID string) string {
	return fmt.Sprintf("⚠️ Finish answering order %s first.", orderID)
}

func msgAmbiguousPrice(pending []*order.Order) string {
	return fmt.Sprintf("⚠️ %d orders are waiting for a price: %s\nPress Confirm on one of them, then enter its price.",
		len(pending), joinIDs(pending))
}

func msgAmbiguousReject(pending []*order.Order) string {
	return fmt.Sprintf("⚠️ %d orders are waiting for a reject reason: %s\nPress Reject on one of them again, then enter the reason.",
		len(pending), joinIDs(pending))
}

func msgFinalSummary(o *order.Order, currency, pickupLocation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `✅ ORDER COMPLETED
🛒 ORDER DETAILS
Order ID: %s
Model: %s
Condition: %s
Storage: %s
Color: %s
Customer: %s
Phone: %s
💰 Price: %s %s
Method: %s`, o.ID, o.Model, o.Condition, o.Storage, o.Color, o.Name, o.Phone, currency, o.Price, o.Fulfillment)

	switch o.Fulfillment {
	case order.FulfillmentPickup:
		fmt.Fprintf(&b, "\nPickup Location: %s", pickupLocation)
	case order.FulfillmentDelivery:
		if o.Location != nil {
			fmt.Fprintf(&b, "\nDelivery Location: %.2f, %.2f\n%s", o.Location.Latitude, o.Location.Longitude, mapLink(o.Location))
		}
	}

	if o.PaymentSkipped {
		b.WriteString("\nStatus: PAYMENT ON DELIVERY")
	} else {
		b.WriteString("\nStatus: PAID ✅")
	}
	return b.String()
}

func mapLink(loc *order.Location) string {
	if loc == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", loc.Latitude, loc.Longitude)
}

func joinIDs(orders []*order.Order) string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return strings.Join(ids, ", ")
}

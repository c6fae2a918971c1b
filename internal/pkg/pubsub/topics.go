package pubsub

// Topic names are consumed by dashboards outside this process and must not change.
const (
	marketingUpdated        = "marketingUpdated"
	restaurantUpdatedPrefix = "restaurantUpdated-"
	sendNotificationPrefix  = "sendNotification"
	sendNotificationsPrefix = "sendNotifications"
)

// MarketingUpdatedTopic is published after any order change; global dashboards listen on it.
func MarketingUpdatedTopic() string {
	return marketingUpdated
}

// RestaurantUpdatedTopic is published after a change to an order of restaurantID.
func RestaurantUpdatedTopic(restaurantID string) string {
	return restaurantUpdatedPrefix + restaurantID
}

// SendNotificationTopic carries a freshly created notification for recipientID.
func SendNotificationTopic(recipientID string) string {
	return sendNotificationPrefix + recipientID
}

// SendNotificationsTopic asks open channels of recipientID to re-fetch their notifications.
// It carries no payload.
func SendNotificationsTopic(recipientID string) string {
	return sendNotificationsPrefix + recipientID
}

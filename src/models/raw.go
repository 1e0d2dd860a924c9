package models

// -----------------------------------------------------------------------------
// Raw records as handed out by the host game client. Pointers are nil where
// the host reports null. The yaml tags are used by the fixture source.
// -----------------------------------------------------------------------------

type RawGameState string

const (
	GameStateStarting       RawGameState = "STARTING"
	GameStateLoginScreen    RawGameState = "LOGIN_SCREEN"
	GameStateLoggingIn      RawGameState = "LOGGING_IN"
	GameStateLoading        RawGameState = "LOADING"
	GameStateLoggedIn       RawGameState = "LOGGED_IN"
	GameStateConnectionLost RawGameState = "CONNECTION_LOST"
	GameStateHopping        RawGameState = "HOPPING"
)

// -----------------------------------------------------------------------------

type RawOfferState string

const (
	OfferEmpty         RawOfferState = "EMPTY"
	OfferCancelledBuy  RawOfferState = "CANCELLED_BUY"
	OfferBuying        RawOfferState = "BUYING"
	OfferBought        RawOfferState = "BOUGHT"
	OfferCancelledSell RawOfferState = "CANCELLED_SELL"
	OfferSelling       RawOfferState = "SELLING"
	OfferSold          RawOfferState = "SOLD"
)

type RawOffer struct {
	ItemID        int           `yaml:"item_id"`
	Price         int           `yaml:"price"`
	QuantitySold  int           `yaml:"quantity_sold"`
	TotalQuantity int           `yaml:"total_quantity"`
	State         RawOfferState `yaml:"state"`
}

// -----------------------------------------------------------------------------

type RawContainerID int

// ContainerInventory is the host's id for the player's backpack.
const ContainerInventory RawContainerID = 93

type RawItem struct {
	ID       int `yaml:"id"`
	Quantity int `yaml:"quantity"`
}

type RawItemContainer struct {
	Items []*RawItem `yaml:"items"`
}

// Item returns the item in a slot, or nil when the slot is empty or out of range.
func (c *RawItemContainer) Item(slot int) *RawItem {
	if c == nil || slot < 0 || slot >= len(c.Items) {
		return nil
	}
	return c.Items[slot]
}

// -----------------------------------------------------------------------------

type RawCamera struct {
	Z     int `yaml:"z"`
	Yaw   int `yaml:"yaw"`
	Scale int `yaml:"scale"`
}

type RawWorldPoint struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Plane int `yaml:"plane"`
}

type RawPlayer struct {
	Name          string         `yaml:"name"`
	WorldLocation *RawWorldPoint `yaml:"location"`
}

// -----------------------------------------------------------------------------

type RawChatChannel string

const ChatPublic RawChatChannel = "PUBLICCHAT"

type RawMessageNode struct {
	Value     string `yaml:"value"`
	Name      string `yaml:"name"`
	Timestamp int64  `yaml:"timestamp"`
}

type RawChatLineBuffer struct {
	Lines []*RawMessageNode `yaml:"lines"`
}

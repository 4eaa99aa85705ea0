package event

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType, "Unknown" if unregistered
func GetEventName(et EventType) string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

func (et EventType) String() string {
	return GetEventName(et)
}

func init() {
	RegisterType("Tick", EventTick)
	RegisterType("SpinRequested", EventSpinRequested)
	RegisterType("RestartRequested", EventRestartRequested)
	RegisterType("SessionStarted", EventSessionStarted)
	RegisterType("SpinStarted", EventSpinStarted)
	RegisterType("ReelSettled", EventReelSettled)
	RegisterType("OutcomeClassified", EventOutcomeClassified)
	RegisterType("FeedbackComplete", EventFeedbackComplete)
	RegisterType("GameOver", EventGameOver)
}

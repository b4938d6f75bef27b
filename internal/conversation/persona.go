package conversation

import "strings"

// Topics offered by the practice chat.
const (
	TopicFriends        = "friends"
	TopicTravel         = "travel"
	TopicJobInterview   = "job-interview"
	TopicStudentTeacher = "student-teacher"
	TopicShopping       = "shopping"
	TopicRestaurant     = "restaurant"
)

const defaultPersona = "a friendly English tutor"

var personas = map[string]string{
	TopicFriends:        "a friend catching up over coffee",
	TopicTravel:         "a helpful travel agent planning a trip",
	TopicJobInterview:   "a polite interviewer hiring for an office job",
	TopicStudentTeacher: "a patient English teacher",
	TopicShopping:       "a shop assistant in a clothing store",
	TopicRestaurant:     "a waiter taking an order at a restaurant",
}

// Topics returns the supported topic names.
func Topics() []string {
	return []string{
		TopicFriends, TopicTravel, TopicJobInterview,
		TopicStudentTeacher, TopicShopping, TopicRestaurant,
	}
}

// personaFor returns the role the model plays for topic. Unknown topics get
// the general tutor.
func personaFor(topic string) string {
	if p, ok := personas[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return p
	}
	return defaultPersona
}

package scorebot

// VERSION represents the current engine version
const VERSION = "1.0.0"

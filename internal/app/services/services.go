package services

// Services defined in this package:
// - Matcher functions: supply, demand and mutual matches over a record snapshot
// - NotificationService: announces mutual matches by email
// - Dispatcher: queues notification passes on the background worker pool
// - SkillService: validates, stores and edits skill records

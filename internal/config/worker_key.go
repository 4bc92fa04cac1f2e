package config

type WorkerKeyStruct struct {
	ContactMessagesQueue string
	SubmissionLogQueue   string
}

var WorkerKey = &WorkerKeyStruct{
	ContactMessagesQueue: "contact_messages_queue",
	SubmissionLogQueue:   "submission_log_queue",
}

package config

type WorkerKeyStruct struct {
	OutboundEmailQueue string
}

var WorkerKey = &WorkerKeyStruct{
	OutboundEmailQueue: "outbound_email_queue",
}

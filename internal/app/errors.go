package app

// Client-facing messages of the prediction endpoint.
const (
	MsgNoImage         = "No image provided"
	MsgNoFileSelected  = "No file selected"
	MsgNotAnImage      = "File is not an image"
	MsgImageTooLarge   = "Image too large"
	MsgNotRecognized   = "The uploaded image is not recognized as a coffee leaf."
	msgStoragePrefix   = "Failed to save image to GCS: "
	msgInferencePrefix = "Prediction error: "
	msgDatabasePrefix  = "Database error: "
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindLowConfidence
	KindStorage
	KindInference
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindLowConfidence:
		return "low_confidence"
	case KindStorage:
		return "storage"
	case KindInference:
		return "inference"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// PredictError is the failure of one step of the prediction pipeline.
// Message is safe to return to the client as is.
type PredictError struct {
	Kind    ErrorKind
	Message string
	// Confidence is set for KindLowConfidence, formatted "XX.XX%".
	Confidence string
	Err        error
}

func (e *PredictError) Error() string {
	return e.Message
}

func (e *PredictError) Unwrap() error {
	return e.Err
}

func validationError(msg string) *PredictError {
	return &PredictError{Kind: KindValidation, Message: msg}
}

func lowConfidenceError(confidence string) *PredictError {
	return &PredictError{Kind: KindLowConfidence, Message: MsgNotRecognized, Confidence: confidence}
}

func storageError(err error) *PredictError {
	return &PredictError{Kind: KindStorage, Message: msgStoragePrefix + err.Error(), Err: err}
}

func inferenceError(err error) *PredictError {
	return &PredictError{Kind: KindInference, Message: msgInferencePrefix + err.Error(), Err: err}
}

func persistenceError(err error) *PredictError {
	return &PredictError{Kind: KindPersistence, Message: msgDatabasePrefix + err.Error(), Err: err}
}

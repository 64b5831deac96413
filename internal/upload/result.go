package upload

// Color names the colour a status line is rendered in.
type Color string

const (
	ColorError   Color = "red"
	ColorInfo    Color = "steelblue"
	ColorSuccess Color = "green"
)

// User-visible status strings.
const (
	MessageNoFile       = "Por favor, selecciona una imagen."
	MessageProcessing   = "Procesando la imagen..."
	MessageSuccess      = "¡Imagen correctamente procesada!"
	MessageServerFailed = "Error al procesar la imagen"
	errorPrefix         = "Error: "
)

// Status is the (text, color) pair shown to the user.
type Status struct {
	Text  string
	Color Color
}

// Blob is a fully read response body.
type Blob struct {
	Data        []byte
	ContentType string
}

// Result is the current display state of the controller. Exactly one of
// Empty, Processing, Success or Failure.
type Result interface {
	isResult()
}

// Empty means nothing has been submitted yet.
type Empty struct{}

// Processing means a request is in flight.
type Processing struct{}

// Success carries the processed image.
type Success struct {
	Image Blob
}

// FailureKind classifies why a submission failed.
type FailureKind int

const (
	// NoFileSelected is reported before any request is built.
	NoFileSelected FailureKind = iota
	// ServerRejected means the server answered with a non-2xx status.
	ServerRejected
	// TransportFailure covers send errors, body read errors and failures
	// deriving the image reference.
	TransportFailure
)

func (k FailureKind) String() string {
	switch k {
	case NoFileSelected:
		return "no_file_selected"
	case ServerRejected:
		return "server_rejected"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Failure ends a submission. Message is shown after "Error: ", except for
// NoFileSelected which has its own fixed text.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (Empty) isResult()      {}
func (Processing) isResult() {}
func (Success) isResult()    {}
func (Failure) isResult()    {}

// StatusOf projects a result onto the status shown to the user.
func StatusOf(r Result) Status {
	switch v := r.(type) {
	case Processing:
		return Status{Text: MessageProcessing, Color: ColorInfo}
	case Success:
		return Status{Text: MessageSuccess, Color: ColorSuccess}
	case Failure:
		if v.Kind == NoFileSelected {
			return Status{Text: MessageNoFile, Color: ColorError}
		}
		return Status{Text: errorPrefix + v.Message, Color: ColorError}
	default:
		return Status{}
	}
}

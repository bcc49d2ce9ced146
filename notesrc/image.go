package notesrc

import "github.com/tsawler/notedeck/ocr"

func imageLines(data []byte, opts ocr.Options) ([]string, error) {
	client, err := ocr.New(opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	return client.Recognize(data)
}

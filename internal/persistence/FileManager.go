package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"showtimer/internal/models"
	"showtimer/internal/persistence/interfaces"
	"showtimer/internal/providers"
)

type FileManager struct {
	compressor interfaces.CompressorInterface
	codec      interfaces.CodecInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, codec interfaces.CodecInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		codec:      codec,
		logger:     logger,
	}
}

// SaveToFile writes the snapshot through a temp file and rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (f *FileManager) SaveToFile(fileName string, snapshot models.Snapshot) error {
	encoded, err := f.codec.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data, err := f.compressor.Compress(encoded)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile reads and validates a snapshot. A missing file yields (nil, nil).
func (f *FileManager) LoadFromFile(fileName string) (*models.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		// files written before compression was enabled are stored as is
		f.logger.Warnf(providers.TypeApp, "Snapshot %s is not compressed, reading as plain data", fileName)
		decompressed = data
	}

	snapshot, keys, err := decodeSnapshot(f.codec, decompressed)
	if err != nil {
		if f.codec.Name() == FormatJSON {
			return nil, err
		}
		f.logger.Warnf(providers.TypeApp, "Snapshot %s is not %s, trying json", fileName, f.codec.Name())
		if snapshot, keys, err = decodeSnapshot(JSONCodec{}, decompressed); err != nil {
			return nil, err
		}
	}

	if err := keys.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snapshot, nil
}

func decodeSnapshot(codec interfaces.CodecInterface, data []byte) (models.Snapshot, models.SnapshotKeys, error) {
	var snapshot models.Snapshot
	var keys models.SnapshotKeys
	if err := codec.Unmarshal(data, &snapshot); err != nil {
		return snapshot, keys, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := codec.Unmarshal(data, &keys); err != nil {
		return snapshot, keys, fmt.Errorf("decode snapshot keys: %w", err)
	}
	return snapshot, keys, nil
}

package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"purair2mqtt/pkg/airctl"

	"github.com/carlmjohnson/versioninfo"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("purair_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "purair2mqtt",
		Model:        "Purair",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Purair %s", md5HashShort(baseTopic)),
	}
}

// PurifierDevice derives the HA device record from the identity keys
// of a status snapshot. The caller guarantees DeviceId is present.
func PurifierDevice(status airctl.DeviceStatus, model string, name string) Device {
	deviceId, _ := status["DeviceId"].(string)
	version, _ := status["swversion"].(string)
	return Device{
		Id:           fmt.Sprintf("purair_%s", md5HashShort(deviceId)),
		Manufacturer: "Philips",
		Model:        model,
		Version:      version,
		Name:         name,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

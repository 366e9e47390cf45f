// internal/event/types.go
package event

const (
	SceneLoaded      EventType = "SceneLoaded"      // Обе модели (или те, что удалось) загружены
	SceneReset       EventType = "SceneReset"       // Сцена очищена и перезагружается
	AssetLoadFailed  EventType = "AssetLoadFailed"  // Модель не загрузилась
	ThrowRequested   EventType = "ThrowRequested"   // Жест завершён с движением
	ThrowIgnored     EventType = "ThrowIgnored"     // Клик без движения
	ThrowRejected    EventType = "ThrowRejected"    // Бросок отклонён (в полёте / нет сущности)
	ThrowStarted     EventType = "ThrowStarted"     // Мяч вылетел
	BallHit          EventType = "BallHit"          // Мяч попал в существо
	BallMissed       EventType = "BallMissed"       // Траектория закончилась без попадания
	CreatureCaptured EventType = "CreatureCaptured" // Существо втянуто в мяч
	BlinkToggled     EventType = "BlinkToggled"     // Мяч мигнул
	BlinkFinished    EventType = "BlinkFinished"    // Мигание закончено
)

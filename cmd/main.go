package main

import (
    "log"
    "os"

    "backend/config"
    "backend/routes"
    "backend/utils"
)

func main() {
    db := config.InitDB()
    utils.InitS3()

    r := routes.SetupRouter(db)

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }
    if err := r.Run(":" + port); err != nil {
        log.Fatalf("server stopped: %v", err)
    }
}
